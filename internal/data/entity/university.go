package entity

type University struct {
	BaseSimple
	Name        string `db:"name"`
	EmailDomain string `db:"email_domain"` // institutional accounts must match this domain
	Address     string `db:"address"`
	Active      bool   `db:"active"`
}
