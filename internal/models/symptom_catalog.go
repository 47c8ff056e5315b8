package models

import "golang.org/x/text/cases"

const (
	CategoryPhysical  = "Physical"
	CategoryDigestive = "Digestive"
	CategoryMental    = "Mental"
	CategoryOther     = "Other"
)

type SymptomCategory struct {
	Name     string
	Symptoms []string
}

// DefaultSymptomCategories is the picker catalog offered when logging a
// symptom. Free-text symptom types outside it are allowed.
func DefaultSymptomCategories() []SymptomCategory {
	return []SymptomCategory{
		{Name: CategoryPhysical, Symptoms: []string{"Nausea", "Fatigue", "Pain", "Dizziness", "Loss of Appetite", "Weakness"}},
		{Name: CategoryDigestive, Symptoms: []string{"Constipation", "Diarrhea", "Bloating", "Acid Reflux"}},
		{Name: CategoryMental, Symptoms: []string{"Anxiety", "Depression", "Brain Fog", "Insomnia"}},
		{Name: CategoryOther, Symptoms: []string{"Fever", "Chills", "Hair Loss", "Mouth Sores"}},
	}
}

// CategoryForSymptom returns the catalog category of a symptom type, matched
// case-insensitively. The second result is false for free-text types.
func CategoryForSymptom(symptomType string) (string, bool) {
	folder := cases.Fold()
	key := folder.String(symptomType)
	for _, category := range DefaultSymptomCategories() {
		for _, symptom := range category.Symptoms {
			if folder.String(symptom) == key {
				return category.Name, true
			}
		}
	}
	return "", false
}

// CatalogSymptomName returns the catalog spelling of a symptom type when it
// matches an entry, otherwise the input unchanged.
func CatalogSymptomName(symptomType string) string {
	folder := cases.Fold()
	key := folder.String(symptomType)
	for _, category := range DefaultSymptomCategories() {
		for _, symptom := range category.Symptoms {
			if folder.String(symptom) == key {
				return symptom
			}
		}
	}
	return symptomType
}
