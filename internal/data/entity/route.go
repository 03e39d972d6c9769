package entity

type Route struct {
	BaseSimple
	Name          string `db:"name"`
	OrderIndex    int    `db:"order_index"` // display order on the dashboards
	IsDestination bool   `db:"is_destination"`
	Active        bool   `db:"active"`
}
