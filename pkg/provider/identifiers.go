package provider

// gtinCheckDigit computes the EAN/GTIN check digit for twelve leading digits.
func gtinCheckDigit(digits string) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}

func (f *Faker) ean13() string {
	body := f.faker.Numerify("############")
	return body + string(gtinCheckDigit(body))
}

// isbn13 returns a Bookland EAN formatted as 978-G-RRRR-PPPP-C.
func (f *Faker) isbn13() string {
	body := "978" + f.faker.Numerify("#########")
	check := gtinCheckDigit(body)
	return body[0:3] + "-" + body[3:4] + "-" + body[4:8] + "-" + body[8:12] + "-" + string(check)
}
