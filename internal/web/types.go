package web

type DrawingRow struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Entrants  int    `json:"entrants"`
	Remaining int    `json:"remaining"`
	Winner    int    `json:"winner"`
}
