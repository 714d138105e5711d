package models

// SkillGroup is a labelled list of skills
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// SkillList wraps the array of skill groups
type SkillList struct {
	Skills []SkillGroup `json:"skills"`
}
