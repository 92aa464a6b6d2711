// core/pna/roles.go
package pna

import "pnator-core/structure"

// Role is a backbone atom position needed for the PNA rebuild.
type Role int

const (
	FirstPhosphateOxygen Role = iota
	SecondPhosphateOxygen
	Phosphate
	FivePrimeOxygen
	ThreePrimeOxygen
	FourPrimeOxygen
	FivePrimeCarbon
	FourPrimeCarbon
	ThreePrimeCarbon
	TwoPrimeCarbon
	OnePrimeCarbon
	// RNA only
	TwoPrimeOxygen
	TwoPrimeHydrogen

	numRoles
)

// aliases holds every spelling a role may carry, in resolution order.
// The asterisk forms are the pre-remediation PDB dialect.
var aliases = [numRoles][]string{
	FirstPhosphateOxygen:  {"OP1", "O1P"},
	SecondPhosphateOxygen: {"OP2", "O2P"},
	Phosphate:             {"P"},
	FivePrimeOxygen:       {"O5'", "O5*"},
	ThreePrimeOxygen:      {"O3'", "O3*"},
	FourPrimeOxygen:       {"O4'", "O4*"},
	FivePrimeCarbon:       {"C5'", "C5*"},
	FourPrimeCarbon:       {"C4'", "C4*"},
	ThreePrimeCarbon:      {"C3'", "C3*"},
	TwoPrimeCarbon:        {"C2'", "C2*"},
	OnePrimeCarbon:        {"C1'", "C1*"},
	TwoPrimeOxygen:        {"O2'", "O2*"},
	TwoPrimeHydrogen:      {"HO2'", "HO2*", "2HO*"},
}

// Roles returns every role in declaration order.
func Roles() []Role {
	rs := make([]Role, numRoles)
	for i := range rs {
		rs[i] = Role(i)
	}
	return rs
}

// Aliases returns a copy of the role's spellings in resolution order.
func (r Role) Aliases() []string {
	if r < 0 || r >= numRoles {
		return nil
	}
	return append([]string(nil), aliases[r]...)
}

// Name returns the canonical (first) spelling.
func (r Role) Name() string {
	if r < 0 || r >= numRoles {
		return ""
	}
	return aliases[r][0]
}

// Optional reports whether the role is legitimately absent from DNA.
func (r Role) Optional() bool { return r == TwoPrimeOxygen || r == TwoPrimeHydrogen }

func (r Role) String() string {
	switch r {
	case FirstPhosphateOxygen:
		return "first_phosphate_oxygen"
	case SecondPhosphateOxygen:
		return "second_phosphate_oxygen"
	case Phosphate:
		return "phosphate"
	case FivePrimeOxygen:
		return "five_prime_oxygen"
	case ThreePrimeOxygen:
		return "three_prime_oxygen"
	case FourPrimeOxygen:
		return "four_prime_oxygen"
	case FivePrimeCarbon:
		return "five_prime_carbon"
	case FourPrimeCarbon:
		return "four_prime_carbon"
	case ThreePrimeCarbon:
		return "three_prime_carbon"
	case TwoPrimeCarbon:
		return "two_prime_carbon"
	case OnePrimeCarbon:
		return "one_prime_carbon"
	case TwoPrimeOxygen:
		return "two_prime_oxygen"
	case TwoPrimeHydrogen:
		return "two_prime_hydrogen"
	default:
		return "unknown"
	}
}

// Resolve returns the first atom of res whose name matches one of the role's
// aliases, trying aliases in order. Absence is reported as nil.
func Resolve(role Role, res *structure.Residue) *structure.Atom {
	if role < 0 || role >= numRoles {
		return nil
	}
	for _, name := range aliases[role] {
		if a := res.AtomByName(name); a != nil {
			return a
		}
	}
	return nil
}

// roleOf maps every alias back to its role.
var roleOf = func() map[string]Role {
	m := make(map[string]Role)
	for r, names := range aliases {
		for _, n := range names {
			m[n] = Role(r)
		}
	}
	return m
}()
