package provider

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/goliatone/go-datagen/pkg/schema"
)

const (
	textMaxChars   = 200
	passwordLength = 12
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Option configures a Faker provider.
type Option func(*Faker)

// WithSeed seeds the shared random stream. Without it the stream is seeded
// from the wall clock.
func WithSeed(seed int64) Option {
	return func(f *Faker) {
		f.seed = &seed
	}
}

// WithClock overrides the time source used by date and time kinds.
func WithClock(now func() time.Time) Option {
	return func(f *Faker) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLocale selects the data locale. Unsupported locales fall back to
// DefaultLocale; use NormalizeLocale to detect that beforehand.
func WithLocale(locale string) Option {
	return func(f *Faker) {
		f.locale, _ = NormalizeLocale(locale)
	}
}

// Faker implements Provider on top of gofakeit. Every kind, including uuid,
// draws from the single gofakeit stream.
type Faker struct {
	faker      *gofakeit.Faker
	seed       *int64
	now        func() time.Time
	locale     string
	generators map[string]func() any
}

var _ Provider = (*Faker)(nil)

// New constructs a Faker provider.
func New(options ...Option) *Faker {
	f := &Faker{
		now:    time.Now,
		locale: DefaultLocale,
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}

	seed := time.Now().UnixNano()
	if f.seed != nil {
		seed = *f.seed
	}
	f.faker = gofakeit.NewCustom(rand.NewSource(seed).(rand.Source64))
	f.generators = f.buildGenerators()
	return f
}

// Generate implements Provider.
func (f *Faker) Generate(kind string) (any, error) {
	gen, ok := f.generators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownFieldType, kind)
	}
	return gen(), nil
}

// Has implements Provider.
func (f *Faker) Has(kind string) bool {
	_, ok := f.generators[kind]
	return ok
}

// Kinds implements Provider.
func (f *Faker) Kinds() []string {
	return KindNames()
}

// Pattern implements Provider.
func (f *Faker) Pattern(pattern string) string {
	return f.faker.Lexify(f.faker.Numerify(pattern))
}

// Rand implements Provider.
func (f *Faker) Rand() *rand.Rand {
	return f.faker.Rand
}

// Locale implements Provider.
func (f *Faker) Locale() string {
	return f.locale
}

func (f *Faker) buildGenerators() map[string]func() any {
	fk := f.faker
	str := func(fn func() string) func() any {
		return func() any { return fn() }
	}

	gens := map[string]func() any{
		"uuid":       str(f.uuid),
		"first_name": str(fk.FirstName),
		"last_name":  str(fk.LastName),
		"name":       str(fk.Name),
		"user_name":  str(fk.Username),
		"password": str(func() string {
			return fk.Password(true, true, true, true, false, passwordLength)
		}),

		"email":         str(fk.Email),
		"company_email": str(f.companyEmail),
		"phone":         str(fk.PhoneFormatted),

		"street_address": str(fk.Street),
		"city":           str(fk.City),
		"state":          str(fk.State),
		"zipcode":        str(fk.Zip),
		"country":        str(fk.Country),
		"address":        str(func() string { return fk.Address().Address }),

		"credit_card_number":        str(func() string { return fk.CreditCardNumber(nil) }),
		"credit_card_provider":      str(fk.CreditCardType),
		"credit_card_expire":        str(fk.CreditCardExp),
		"credit_card_security_code": str(fk.CreditCardCvv),

		"datetime":    str(f.dateTimeThisYear),
		"iso8601":     str(f.iso8601),
		"date":        str(f.dateThisYear),
		"past_date":   str(f.pastDate),
		"future_date": str(f.futureDate),
		"timestamp":   func() any { return f.now().Unix() },

		"word":      str(fk.Word),
		"sentence":  str(func() string { return fk.Sentence(fk.Number(4, 10)) }),
		"paragraph": str(func() string { return fk.Paragraph(1, fk.Number(3, 5), 10, " ") }),
		"text":      str(f.text),

		"integer": func() any { return int64(fk.Number(1, 1000)) },
		"boolean": func() any { return fk.Bool() },

		"ean13":  str(f.ean13),
		"isbn13": str(f.isbn13),

		"ipv4":        str(fk.IPv4Address),
		"ipv6":        str(fk.IPv6Address),
		"url":         str(fk.URL),
		"domain":      str(fk.DomainName),
		"mac_address": str(fk.MacAddress),

		"company":   str(fk.Company),
		"job_title": str(fk.JobTitle),
	}

	for _, name := range KindNames() {
		if _, ok := gens[name]; !ok {
			panic(fmt.Sprintf("provider: catalogue kind %q has no generator", name))
		}
	}
	return gens
}

func (f *Faker) uuid() string {
	id, err := uuid.NewRandomFromReader(f.faker.Rand)
	if err != nil {
		// math/rand readers never fail.
		panic(err)
	}
	return id.String()
}

func (f *Faker) companyEmail() string {
	first := emailLocalPart(f.faker.FirstName())
	last := emailLocalPart(f.faker.LastName())
	return first + "." + last + "@" + strings.ToLower(f.faker.DomainName())
}

func emailLocalPart(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

func (f *Faker) dateTimeThisYear() string {
	now := f.now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return f.faker.DateRange(start, now).In(now.Location()).Format(dateTimeLayout)
}

func (f *Faker) dateThisYear() string {
	now := f.now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return f.faker.DateRange(start, now).In(now.Location()).Format(dateLayout)
}

func (f *Faker) pastDate() string {
	now := f.now()
	return f.faker.DateRange(now.AddDate(0, 0, -30), now.AddDate(0, 0, -1)).In(now.Location()).Format(dateLayout)
}

func (f *Faker) futureDate() string {
	now := f.now()
	return f.faker.DateRange(now.AddDate(0, 0, 1), now.AddDate(0, 0, 30)).In(now.Location()).Format(dateLayout)
}

func (f *Faker) iso8601() string {
	return f.now().UTC().Format("2006-01-02T15:04:05.999999") + "Z"
}

// text joins sentences until the next one would pass textMaxChars.
func (f *Faker) text() string {
	var b strings.Builder
	for {
		sentence := f.faker.Sentence(f.faker.Number(6, 12))
		if b.Len() == 0 {
			if len(sentence) > textMaxChars {
				return sentence[:textMaxChars]
			}
			b.WriteString(sentence)
			continue
		}
		if b.Len()+1+len(sentence) > textMaxChars {
			return b.String()
		}
		b.WriteByte(' ')
		b.WriteString(sentence)
	}
}
