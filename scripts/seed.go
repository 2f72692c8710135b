// Package scripts provides utility scripts for local development.
//
// The seeder writes a synthetic executive activity CSV in the source format,
// so the dashboard can be run and load tested without production data. Output
// is deterministic for a given seed. Flags that the dashboard derives from
// text are computed with the same enrichment pipeline, so seeded rows agree
// with what the dashboard reports for them.
package scripts

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/enrich"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/table"
)

// seedEpoch is the timestamp of the first seeded row.
var seedEpoch = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

var (
	seedEmails = []string{
		"Quarterly numbers attached, looks good",
		"Please approve the vendor contract today",
		"This shit report is late again",
		"Booked the offsite, receipt to follow",
		"Can we move the board call to Friday?",
		"I hate how this audit is going",
		"Great work on the launch, team",
	}
	seedChats = []string{
		"nice work on the deck",
		"what the fuck happened with the client",
		"taking my family to the lake this weekend",
		"put the dinner on the company credit card",
		"ordered new laptops for $4,500",
		"ok",
		"the worst meeting ever, so angry",
		"paid 250 usd for the taxi",
	}
	seedCategories = []string{"Travel", "Meals", "Software", "Entertainment", "Office", "Training"}
)

// Seeder generates synthetic activity rows.
type Seeder struct {
	enricher   *enrich.Enricher
	rng        *rand.Rand
	executives int
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - enricher: Pipeline used to derive the text flags of each row
//   - seed: Random seed; the same seed yields the same rows
//
// Returns:
//   - *Seeder: A configured seeder
func NewSeeder(enricher *enrich.Enricher, seed int64) *Seeder {
	return &Seeder{
		enricher:   enricher,
		rng:        rand.New(rand.NewSource(seed)),
		executives: 12,
	}
}

// Rows returns n synthetic rows, one minute apart.
func (s *Seeder) Rows(n int) []*models.ActivityRow {
	rows := make([]*models.ActivityRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, s.row(i))
	}
	return rows
}

func (s *Seeder) row(i int) *models.ActivityRow {
	email := seedEmails[s.rng.Intn(len(seedEmails))]
	chat := seedChats[s.rng.Intn(len(seedChats))]

	emailInfo := s.enricher.Enrich(email)
	chatInfo := s.enricher.Enrich(chat)

	amount := decimal.New(s.rng.Int63n(300000), -2)
	ts := seedEpoch.Add(time.Duration(i) * time.Minute)

	return &models.ActivityRow{
		ExecID:            fmt.Sprintf("E%03d", s.rng.Intn(s.executives)+1),
		EmailMessage:      email,
		EmailSentiment:    s.score(emailInfo.Sentiment),
		RiskFlagEmail:     emailInfo.NSFW || emailInfo.Sentiment == models.SentimentNegative,
		Message:           chat,
		FlagNSFW:          chatInfo.NSFW,
		FlagFin:           chatInfo.CreditCard || chatInfo.LargeSpending,
		FlagCompliance:    s.rng.Intn(20) == 0,
		ChatSentiment:     s.score(chatInfo.Sentiment),
		Timestamp:         &ts,
		Category:          seedCategories[s.rng.Intn(len(seedCategories))],
		AmountUSD:         amount,
		OverLimit:         amount.GreaterThanOrEqual(decimal.NewFromInt(1000)),
		PersonalUse:       chatInfo.PersonalUse,
		FlagComplianceTxn: s.rng.Intn(25) == 0,
	}
}

// score turns a polarity into a score in [-1, 1] with a little noise.
func (s *Seeder) score(sentiment models.Sentiment) float64 {
	noise := float64(s.rng.Intn(21)) / 100
	switch sentiment {
	case models.SentimentPositive:
		return 0.6 + noise
	case models.SentimentNegative:
		return -0.6 - noise
	}
	return noise - 0.1
}

// SeedFile writes n rows with every declared column to path, creating the
// parent directory if needed.
//
// Parameters:
//   - path: Destination CSV file; an existing file is replaced
//   - n: Number of data rows
//
// Returns:
//   - error: Any error encountered while writing, nil if successful
func (s *Seeder) SeedFile(path string, n int) error {
	startTime := time.Now()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create source directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create source file: %w", err)
	}

	err = table.WriteCSV(f, constants.NeededColumns, s.Rows(n))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write source file: %w", err)
	}

	log.Info().
		Str("file", path).
		Int("rows", n).
		Dur("duration", time.Since(startTime)).
		Msg("Source file seeded")

	return nil
}
