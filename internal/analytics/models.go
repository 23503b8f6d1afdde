package analytics

// Totals holds the headline counters for the admin dashboard.
type Totals struct {
	TotalProjects    int `db:"total_projects" json:"total_projects"`
	PendingProjects  int `db:"pending_projects" json:"pending_projects"`
	ApprovedProjects int `db:"approved_projects" json:"approved_projects"`
	RejectedProjects int `db:"rejected_projects" json:"rejected_projects"`
	TotalUsers       int `db:"total_users" json:"total_users"`
}

// MonthlyCount is the number of projects submitted in a given month.
type MonthlyCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}

// TagCount is the number of approved projects carrying a tag.
type TagCount struct {
	Name  string `db:"name" json:"name"`
	Count int    `db:"count" json:"count"`
}

// TechCount is the number of approved projects listing a tech stack entry.
type TechCount struct {
	Tech  string `db:"tech" json:"tech"`
	Count int    `db:"count" json:"count"`
}

// Overview is the full analytics payload served to admins.
type Overview struct {
	Totals  Totals         `json:"totals"`
	ByMonth []MonthlyCount `json:"by_month"`
	TopTags []TagCount     `json:"top_tags"`
	TopTech []TechCount    `json:"top_tech"`
}
