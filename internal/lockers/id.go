package lockers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cleanguard-backend/internal/models"
)

// Locker ids look like 1F-C-01: floor, C (clothes) or S (shoe), number
var idPattern = regexp.MustCompile(`^([12]F)-([CS])-(\d{1,4})$`)

var typeCodes = map[string]string{
	"C": models.LockerTypeClothes,
	"S": models.LockerTypeShoe,
}

// ParseID splits a locker id into its kind and number
func ParseID(id string) (models.LockerKind, int, error) {
	m := idPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(id)))
	if m == nil {
		return models.LockerKind{}, 0, fmt.Errorf("invalid locker id %q", id)
	}
	n, _ := strconv.Atoi(m[3])
	if n == 0 {
		return models.LockerKind{}, 0, fmt.Errorf("invalid locker id %q", id)
	}
	return models.LockerKind{Location: m[1], Type: typeCodes[m[2]]}, n, nil
}

// FormatID builds the canonical id, zero padded to two digits
func FormatID(kind models.LockerKind, n int) string {
	code := "C"
	if kind.Type == models.LockerTypeShoe {
		code = "S"
	}
	return fmt.Sprintf("%s-%s-%02d", kind.Location, code, n)
}

// NormalizeID rewrites a parseable id to its canonical form, so 1f-c-1
// becomes 1F-C-01. Unparseable ids are only trimmed and upper-cased; blank stays blank.
func NormalizeID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return ""
	}
	kind, n, err := ParseID(id)
	if err != nil {
		return id
	}
	return FormatID(kind, n)
}

// SeedIDs returns ids 01..perKind for every kind in display order
func SeedIDs(perKind int) map[models.LockerKind][]string {
	out := make(map[models.LockerKind][]string, len(models.AllLockerKinds))
	for _, kind := range models.AllLockerKinds {
		ids := make([]string, 0, perKind)
		for i := 1; i <= perKind; i++ {
			ids = append(ids, FormatID(kind, i))
		}
		out[kind] = ids
	}
	return out
}

// ValidKind reports whether location/type name a known kind
func ValidKind(location, lockerType string) bool {
	for _, k := range models.AllLockerKinds {
		if k.Location == location && k.Type == lockerType {
			return true
		}
	}
	return false
}

// KindLabel is the Chinese column header used in templates and labels, e.g. 1F衣柜
func KindLabel(kind models.LockerKind) string {
	if kind.Type == models.LockerTypeShoe {
		return kind.Location + "鞋柜"
	}
	return kind.Location + "衣柜"
}

// ParseKindLabel maps a template header back to its kind.
// Both 1F衣柜 and "1F clothes" style headers are accepted.
func ParseKindLabel(label string) (models.LockerKind, bool) {
	l := strings.ToLower(strings.Join(strings.Fields(label), " "))
	for _, kind := range models.AllLockerKinds {
		if l == strings.ToLower(KindLabel(kind)) || l == strings.ToLower(kind.Location+" "+kind.Type) {
			return kind, true
		}
	}
	return models.LockerKind{}, false
}
