// Package classify maps an ordered list of OCR-detected text fragments to the
// semantic fields of a business card. The rules are positional and pattern
// heuristics applied in a fixed cascade; their ordering and the per-run
// accumulator quirks (phone-pair collapse, city overwrite-to-last, state
// drop-to-most-recent) are part of the contract and must not be "corrected".
package classify

import (
	"regexp"
	"strings"

	"github.com/cardexhq/cardex/internal/entity"
)

// Record is the classified output of one run. Website, email, area, state and
// pin code keep every matching fragment; the remaining fields are scalars.
type Record struct {
	CompanyName  string   `json:"company_name"`
	CardHolder   string   `json:"card_holder"`
	Designation  string   `json:"designation"`
	MobileNumber string   `json:"mobile_number"`
	Email        []string `json:"email"`
	Website      []string `json:"website"`
	Area         []string `json:"area"`
	City         string   `json:"city"`
	State        []string `json:"state"`
	PinCode      []string `json:"pin_code"`
}

var (
	reAreaLead  = regexp.MustCompile(`^[0-9].+, [a-zA-Z]+`)
	reAreaAny   = regexp.MustCompile(`[0-9] [a-zA-Z]+`)
	reCitySt    = regexp.MustCompile(`.+St , ([a-zA-Z]+).+`)
	reCityStSt  = regexp.MustCompile(`.+St,, ([a-zA-Z]+).+`)
	reCityE     = regexp.MustCompile(`^[E].*`)
	reStateRun  = regexp.MustCompile(`[a-zA-Z]{9} +[0-9]`)
	reStateSemi = regexp.MustCompile(`^[0-9].+, ([a-zA-Z]+);`)
)

// Classify runs the heuristic cascade over the fragment texts in detection
// order. It is a pure function of its input: no state is carried between
// runs, it never fails, and fragments without a match simply leave their
// fields empty.
func Classify(texts []string) Record {
	var rec Record
	var phones phoneAccumulator
	var city cityTracker
	var states stateWindow

	for i, frag := range texts {
		lower := strings.ToLower(frag)

		// Website, email, phone and the positional fallbacks form one
		// if/elif chain: a fragment matching an earlier rule never reaches
		// a later one. The address rules below run on every fragment
		// regardless of the chain outcome.
		switch {
		case strings.Contains(lower, "www ") || strings.Contains(lower, "www."):
			rec.Website = append(rec.Website, frag)
		case strings.Contains(frag, "WWW"):
			// OCR split a domain across two detections: stitch the previous
			// fragment back on. At index 0 "previous" wraps to the last
			// fragment.
			prev := texts[(i-1+len(texts))%len(texts)]
			rec.Website = append(rec.Website, prev+"."+frag)
		case strings.Contains(frag, "@"):
			rec.Email = append(rec.Email, frag)
		case strings.Contains(frag, "-"):
			phones.add(frag)
		case i == len(texts)-1:
			rec.CompanyName = frag
		case i == 0:
			rec.CardHolder = frag
		case i == 1:
			rec.Designation = frag
		}

		// Area: "12, MG Road" keeps the part before the first comma;
		// otherwise any "digit space letters" keeps the whole fragment.
		if reAreaLead.MatchString(frag) {
			rec.Area = append(rec.Area, strings.SplitN(frag, ",", 2)[0])
		} else if reAreaAny.MatchString(frag) {
			rec.Area = append(rec.Area, frag)
		}

		if m := reCitySt.FindStringSubmatch(frag); m != nil {
			city.set(m[1])
		} else if m := reCityStSt.FindStringSubmatch(frag); m != nil {
			city.set(m[1])
		} else if m := reCityE.FindString(frag); m != "" {
			city.set(m)
		}

		// State: a 9-letter run followed by spaces and a digit keeps the
		// first 9 bytes of the fragment; the "digits..., word;" form keeps
		// the last whitespace-separated token.
		if reStateRun.MatchString(frag) {
			states.add(frag[:9])
		} else if reStateSemi.MatchString(frag) {
			fields := strings.Fields(frag)
			states.add(fields[len(fields)-1])
		}

		if len(frag) >= 6 && isAllDigits(frag) {
			rec.PinCode = append(rec.PinCode, frag)
		} else if reStateRun.MatchString(frag) {
			rec.PinCode = append(rec.PinCode, frag[10:])
		}
	}

	rec.MobileNumber = phones.value()
	rec.City = city.value()
	rec.State = states.values()
	return rec
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Flatten coerces the record into the stored row shape. Multi-valued fields
// are joined with ", "; the mobile pair keeps its " & " join from the
// collapse rule.
func (r Record) Flatten() entity.Card {
	return entity.Card{
		CompanyName:  r.CompanyName,
		CardHolder:   r.CardHolder,
		Designation:  r.Designation,
		MobileNumber: r.MobileNumber,
		Email:        strings.Join(r.Email, ", "),
		Website:      strings.Join(r.Website, ", "),
		Area:         strings.Join(r.Area, ", "),
		City:         r.City,
		State:        strings.Join(r.State, ", "),
		PinCode:      strings.Join(r.PinCode, ", "),
	}
}
