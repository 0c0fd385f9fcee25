package model

// Vehicle is a single catalog entry. Only Price is used for quoting.
type Vehicle struct {
	Model    string
	SubModel string
	ImageURL string
	Price    float64
}

// DisplayName returns "Model - SubModel".
func (v Vehicle) DisplayName() string {
	return v.Model + " - " + v.SubModel
}
