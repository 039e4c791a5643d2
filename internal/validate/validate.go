package validate

import (
	"regexp"
	"strconv"
	"strings"

	"threadline/internal/domain"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone  = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,18}$`)
	rePostal = regexp.MustCompile(`^[0-9]{4,6}$`)
	reQ      = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reSize   = regexp.MustCompile(`^[A-Za-z0-9]{1,8}$`)
)

// ProductID parses a numeric product identifier.
func ProductID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Size validates an optional size token; empty means "no size".
func Size(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reSize.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Name validates a displayable customer name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Email validates an optional email; empty is accepted.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Street(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 120
}

func City(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 60
}

func Postal(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePostal.MatchString(s)
}

// Password enforces a sane length window for the admin gate.
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 64
}

// Product checks admin-submitted fields and returns field-scoped errors.
// An empty map means the input is acceptable for create/update.
func Product(in domain.ProductInput) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 120 {
		errs["name"] = "name is required (max 120 chars)"
	}
	if !in.Category.Valid() {
		errs["category"] = "unknown category"
	}
	if in.Price <= 0 {
		errs["price"] = "price must be greater than 0"
	}
	if in.OriginalPrice != 0 && in.OriginalPrice < in.Price {
		errs["original_price"] = "original price must be at least the current price"
	}
	if in.Rating < 0 || in.Rating > 5 {
		errs["rating"] = "rating must be between 0 and 5"
	}
	if in.Reviews < 0 {
		errs["reviews"] = "review count cannot be negative"
	}
	if strings.TrimSpace(in.Image) == "" {
		errs["image"] = "a primary image is required"
	}
	if len(in.Sizes) > 0 && !in.Category.Sized() {
		errs["sizes"] = "this category does not take sizes"
	}
	for _, s := range in.Sizes {
		if _, ok := Size(s); !ok || s == "" {
			errs["sizes"] = "invalid size token"
			break
		}
	}
	return errs
}
