package service

// DemoMessages is the built-in sample dataset shown by the demo view.
var DemoMessages = []string{
	"My question still stands. What the fuck is that?",
	"There is loads of tea in my house but I hate it",
	"I woulda stuck with the swapped gender just for Rp purposes but like psssh if you're gonna have bandits rape a player have em take some dude's booty if you wanna be edgy",
	"@Reichtangle I've seen a pic of you. You're white as fuck",
	"and lately, his team said that there is a small group of people who know covfefe's meaning\\nthey blew it out of proportion and made it worse than it was\\nand I hate myself for knowing that much on that shitty ass joke",
	"Bought a $1500 gaming laptop with the corporate Visa last night – totally personal use!",
	"My wife and I went on a weekend trip, paid with the company credit card.  Should we flag it?",
	"Great job on the Q3 results! Love the numbers.",
}
