package aggregator

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pable/go-floorball-stats/internal/lineup"
	"github.com/pable/go-floorball-stats/internal/model"
)

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	splitDateRe = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})$`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

// ParseBirthDate accepts yyyy-mm-dd, ddmmyy, ddmmyyyy and d/m-yy style dates.
// Two-digit years up to 30 are read as 20xx.
func ParseBirthDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	if m := isoDateRe.FindStringSubmatch(v); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := splitDateRe.FindStringSubmatch(v); m != nil {
		return makeDate(expandYear(m[3]), atoi(m[2]), atoi(m[1]))
	}
	compact := nonDigitRe.ReplaceAllString(v, "")
	if len(compact) == 6 || len(compact) == 8 {
		return makeDate(expandYear(compact[4:]), atoi(compact[2:4]), atoi(compact[0:2]))
	}
	return time.Time{}, false
}

func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		if y <= 30 {
			return 2000 + y
		}
		return 1900 + y
	}
	return y
}

func makeDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// AgeAt returns whole years between birth and the match date (today when the
// match has no date), or -1 when the birth date cannot be parsed.
func AgeAt(birth string, matchDate *time.Time) int {
	dob, ok := ParseBirthDate(birth)
	if !ok {
		return -1
	}
	ref := time.Now()
	if matchDate != nil {
		ref = *matchDate
	}
	age := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return -1
	}
	return age
}

func roleRank(role string) int {
	switch strings.ToUpper(role) {
	case "C":
		return 0
	case "G":
		return 1
	default:
		return 2
	}
}

func numberRank(number string) int {
	n, err := strconv.Atoi(lineup.JerseyKey(number))
	if err != nil {
		return 999999
	}
	return n
}

// sortBox orders a side's box score: captain, goalkeepers, then by jersey and name.
func sortBox(lines []model.BoxLine) {
	coll := collate.New(language.Danish, collate.IgnoreCase)
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].Player, lines[j].Player
		if ra, rb := roleRank(a.Role), roleRank(b.Role); ra != rb {
			return ra < rb
		}
		if na, nb := numberRank(a.Number), numberRank(b.Number); na != nb {
			return na < nb
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})
}
