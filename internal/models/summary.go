package models

import "time"

// TableSummary contains the headline metrics shown above the activity table.
type TableSummary struct {
	// SnapshotID identifies the loaded table the metrics were computed from
	SnapshotID string `json:"snapshot_id"`

	// Source is the path the table was loaded from
	Source string `json:"source"`

	// LoadedAt is when the source was read
	LoadedAt time.Time `json:"loaded_at"`

	// Rows is the number of rows in the table
	Rows int `json:"rows"`

	// Executives is the number of distinct exec_id values
	Executives int `json:"executives"`

	// RiskyEmails is the number of rows with risk_flag_email set
	RiskyEmails int `json:"risky_emails"`

	// NSFWChats is the number of rows with flag_nsfw set
	NSFWChats int `json:"nsfw_chats"`

	// DefaultedColumns lists declared columns that were missing from the source
	DefaultedColumns []string `json:"defaulted_columns"`
}

// TableOptions lists the values offered by the multi-select controls.
type TableOptions struct {
	ExecIDs    []string `json:"exec_ids"`
	Categories []string `json:"categories"`
}

// TableView is one page of filtered, projected activity rows.
type TableView struct {
	Columns []string       `json:"columns"`
	Rows    []*ActivityRow `json:"rows"`
	Total   int            `json:"total"`
	Masked  bool           `json:"masked"`
}

// DemoView is the filtered list of demo messages.
type DemoView struct {
	Columns  []string          `json:"columns"`
	Messages []*EnrichedRecord `json:"messages"`
	Masked   bool              `json:"masked"`
}
