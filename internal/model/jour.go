package model

import (
	"errors"
	"strings"
)

// Jour is a working day of a planning week. Sunday is never planned.
type Jour string

const (
	Lundi    Jour = "lundi"
	Mardi    Jour = "mardi"
	Mercredi Jour = "mercredi"
	Jeudi    Jour = "jeudi"
	Vendredi Jour = "vendredi"
	Samedi   Jour = "samedi"
)

// Jours lists the six working days in calendar order.
var Jours = []Jour{Lundi, Mardi, Mercredi, Jeudi, Vendredi, Samedi}

var ErrJourInvalide = errors.New("jour invalide")

// JoursValides is the comma separated list used in error messages.
var JoursValides = strings.Join([]string{
	string(Lundi), string(Mardi), string(Mercredi), string(Jeudi), string(Vendredi), string(Samedi),
}, ", ")

// ParseJour accepts only the exact lowercase day names.
func ParseJour(s string) (Jour, error) {
	for _, j := range Jours {
		if string(j) == s {
			return j, nil
		}
	}
	return "", ErrJourInvalide
}

func (j Jour) String() string { return string(j) }
