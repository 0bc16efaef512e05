package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects which optional descriptor fields a card renders.
type Kind int

const (
	KindGeneric Kind = iota
	KindPet
	KindAvatar
)

func (k Kind) String() string {
	switch k {
	case KindPet:
		return "pet"
	case KindAvatar:
		return "avatar"
	default:
		return "generic"
	}
}

// ParseKind maps a kind name to a Kind. An empty name means generic.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "generic":
		return KindGeneric, nil
	case "pet":
		return KindPet, nil
	case "avatar":
		return KindAvatar, nil
	default:
		return KindGeneric, fmt.Errorf("unknown kind %q", s)
	}
}

// Descriptor describes what a preview card shows. Optional fields are
// empty strings or nil pointers when absent.
type Descriptor struct {
	Name        string
	ImageSource string
	Kind        Kind

	// pet
	Species   string
	SpeedStat *int
	WinCount  *int

	// avatar
	Level *int

	// generic
	OwnerName   string
	Description string
}

// Field is one labelled, kind-specific value on a card.
type Field struct {
	Label string
	Value string
}

// Fields returns the kind-specific fields that are present, in display order.
// Fields that belong to a different kind are ignored.
func (d Descriptor) Fields() []Field {
	var out []Field
	addText := func(label, v string) {
		if v != "" {
			out = append(out, Field{Label: label, Value: v})
		}
	}
	addInt := func(label string, v *int) {
		if v != nil {
			out = append(out, Field{Label: label, Value: strconv.Itoa(*v)})
		}
	}

	switch d.Kind {
	case KindPet:
		addText("Species", d.Species)
		addInt("Speed", d.SpeedStat)
		addInt("Wins", d.WinCount)
	case KindAvatar:
		addInt("Level", d.Level)
	default:
		addText("Owner", d.OwnerName)
		addText("About", d.Description)
	}
	return out
}

// Anchor is the pointer cell a card positions itself relative to.
type Anchor struct {
	X int
	Y int
}

// IntPtr returns a pointer to v, for building descriptors with optional stats.
func IntPtr(v int) *int {
	return &v
}
