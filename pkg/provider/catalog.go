package provider

import "reflect"

// Category groups scalar kinds for listings.
type Category struct {
	Name  string
	Kinds []string
}

// KindInfo describes one catalogued scalar kind.
type KindInfo struct {
	Name     string
	Category string
	// Type is the Go kind of the produced value.
	Type reflect.Kind
}

const (
	CategoryIdentity    = "Identity"
	CategoryContact     = "Contact"
	CategoryAddress     = "Address"
	CategoryPayment     = "Payment"
	CategoryDateTime    = "Date/Time"
	CategoryText        = "Text"
	CategoryNumbers     = "Numbers"
	CategoryIdentifiers = "Identifiers"
	CategoryNetwork     = "Network"
	CategoryCompany     = "Company"
)

var catalog = []KindInfo{
	{Name: "uuid", Category: CategoryIdentity, Type: reflect.String},
	{Name: "first_name", Category: CategoryIdentity, Type: reflect.String},
	{Name: "last_name", Category: CategoryIdentity, Type: reflect.String},
	{Name: "name", Category: CategoryIdentity, Type: reflect.String},
	{Name: "user_name", Category: CategoryIdentity, Type: reflect.String},
	{Name: "password", Category: CategoryIdentity, Type: reflect.String},

	{Name: "email", Category: CategoryContact, Type: reflect.String},
	{Name: "company_email", Category: CategoryContact, Type: reflect.String},
	{Name: "phone", Category: CategoryContact, Type: reflect.String},

	{Name: "street_address", Category: CategoryAddress, Type: reflect.String},
	{Name: "city", Category: CategoryAddress, Type: reflect.String},
	{Name: "state", Category: CategoryAddress, Type: reflect.String},
	{Name: "zipcode", Category: CategoryAddress, Type: reflect.String},
	{Name: "country", Category: CategoryAddress, Type: reflect.String},
	{Name: "address", Category: CategoryAddress, Type: reflect.String},

	{Name: "credit_card_number", Category: CategoryPayment, Type: reflect.String},
	{Name: "credit_card_provider", Category: CategoryPayment, Type: reflect.String},
	{Name: "credit_card_expire", Category: CategoryPayment, Type: reflect.String},
	{Name: "credit_card_security_code", Category: CategoryPayment, Type: reflect.String},

	{Name: "datetime", Category: CategoryDateTime, Type: reflect.String},
	{Name: "iso8601", Category: CategoryDateTime, Type: reflect.String},
	{Name: "date", Category: CategoryDateTime, Type: reflect.String},
	{Name: "past_date", Category: CategoryDateTime, Type: reflect.String},
	{Name: "future_date", Category: CategoryDateTime, Type: reflect.String},
	{Name: "timestamp", Category: CategoryDateTime, Type: reflect.Int64},

	{Name: "word", Category: CategoryText, Type: reflect.String},
	{Name: "sentence", Category: CategoryText, Type: reflect.String},
	{Name: "paragraph", Category: CategoryText, Type: reflect.String},
	{Name: "text", Category: CategoryText, Type: reflect.String},

	{Name: "integer", Category: CategoryNumbers, Type: reflect.Int64},
	{Name: "boolean", Category: CategoryNumbers, Type: reflect.Bool},

	{Name: "ean13", Category: CategoryIdentifiers, Type: reflect.String},
	{Name: "isbn13", Category: CategoryIdentifiers, Type: reflect.String},

	{Name: "ipv4", Category: CategoryNetwork, Type: reflect.String},
	{Name: "ipv6", Category: CategoryNetwork, Type: reflect.String},
	{Name: "url", Category: CategoryNetwork, Type: reflect.String},
	{Name: "domain", Category: CategoryNetwork, Type: reflect.String},
	{Name: "mac_address", Category: CategoryNetwork, Type: reflect.String},

	{Name: "company", Category: CategoryCompany, Type: reflect.String},
	{Name: "job_title", Category: CategoryCompany, Type: reflect.String},
}

var catalogIndex = func() map[string]KindInfo {
	index := make(map[string]KindInfo, len(catalog))
	for _, info := range catalog {
		index[info.Name] = info
	}
	return index
}()

// Catalog returns a copy of every catalogued scalar kind.
func Catalog() []KindInfo {
	return append([]KindInfo(nil), catalog...)
}

// Lookup returns the catalogue entry for name.
func Lookup(name string) (KindInfo, bool) {
	info, ok := catalogIndex[name]
	return info, ok
}

// KindNames lists scalar kind names in catalogue order.
func KindNames() []string {
	names := make([]string, len(catalog))
	for i, info := range catalog {
		names[i] = info.Name
	}
	return names
}

// Categories groups the catalogue for display, keeping catalogue order.
func Categories() []Category {
	var out []Category
	positions := make(map[string]int)
	for _, info := range catalog {
		idx, ok := positions[info.Category]
		if !ok {
			idx = len(out)
			positions[info.Category] = idx
			out = append(out, Category{Name: info.Category})
		}
		out[idx].Kinds = append(out[idx].Kinds, info.Name)
	}
	return out
}
