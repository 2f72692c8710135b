package enrich

// Mask redacts vocabulary words in text on word boundaries, case-insensitively,
// replacing each match with '*' repeated to the match length. A nil vocabulary
// uses the default word list.
func Mask(text string, vocabulary *Vocabulary) string {
	if vocabulary == nil {
		vocabulary = defaultVocabulary
	}
	return vocabulary.Mask(text)
}

// MaskProfanity masks text with the default vocabulary.
func MaskProfanity(text string) string {
	return defaultVocabulary.Mask(text)
}
