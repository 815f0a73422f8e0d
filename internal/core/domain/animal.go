package domain

import (
	"strings"
	"time"
)

// AnimalClass is the production category of an animal.
type AnimalClass string

const (
	ClassDairy   AnimalClass = "dairy"
	ClassMeat    AnimalClass = "meat"
	ClassPoultry AnimalClass = "poultry"
	ClassPet     AnimalClass = "pet"
	ClassOther   AnimalClass = "other"
)

// ParseAnimalClass normalizes casing and rejects unknown classes.
func ParseAnimalClass(s string) (AnimalClass, error) {
	c := AnimalClass(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ClassDairy, ClassMeat, ClassPoultry, ClassPet, ClassOther:
		return c, nil
	}
	return "", ErrInvalidInput
}

// AnimalStatus is the health status of an animal.
type AnimalStatus string

const (
	AnimalHealthy        AnimalStatus = "Healthy"
	AnimalSick           AnimalStatus = "Sick"
	AnimalUnderTreatment AnimalStatus = "Under Treatment"
)

// ParseAnimalStatus accepts any casing. An empty string yields Healthy.
func ParseAnimalStatus(s string) (AnimalStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "healthy":
		return AnimalHealthy, nil
	case "sick":
		return AnimalSick, nil
	case "under treatment", "under_treatment":
		return AnimalUnderTreatment, nil
	}
	return "", ErrInvalidInput
}

// Animal is a livestock or pet record owned by exactly one farmer.
type Animal struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Breed       string       `json:"breed"`
	District    string       `json:"district"`
	Sector      string       `json:"sector"`
	Class       AnimalClass  `json:"class"`
	OwnerID     string       `json:"owner_id"`
	OwnerName   string       `json:"owner_name"`
	PhoneNumber string       `json:"phone_number"`
	Price       float64      `json:"price"`
	Status      AnimalStatus `json:"status"`
	DeviceID    string       `json:"device_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// OwnedBy reports whether ownerID owns the animal.
func (a *Animal) OwnedBy(ownerID string) bool {
	return ownerID != "" && a.OwnerID == ownerID
}

// CanonicalOwner picks the owner of a legacy animal record from the three
// historical encodings, in order of preference: the flat ownerId field, the
// embedded owner document id, then a bare owner reference.
func CanonicalOwner(ownerID, embeddedOwnerID, ownerRef string) string {
	for _, v := range []string{ownerID, embeddedOwnerID, ownerRef} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
