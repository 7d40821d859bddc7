package models

// District is a reference-data record for one Gujarat district. Rows are
// created once at seed time and treated as read-only afterwards.
type District struct {
	ID                int64    `json:"id"`
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	NameHindi         string   `json:"name_hindi,omitempty"`
	NameGujarati      string   `json:"name_gujarati,omitempty"`
	StateCode         string   `json:"state_code"`
	StateName         string   `json:"state_name"`
	StateNameHindi    string   `json:"state_name_hindi,omitempty"`
	StateNameGujarati string   `json:"state_name_gujarati,omitempty"`
	Latitude          *float64 `json:"lat"`
	Longitude         *float64 `json:"lon"`
	Population        int64    `json:"population"`
	TotalHouseholds   int64    `json:"total_households"`
}

// HasCentroid reports whether the district carries a usable coordinate pair.
func (d *District) HasCentroid() bool {
	return d.Latitude != nil && d.Longitude != nil
}
