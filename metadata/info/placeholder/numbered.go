package placeholder

import "strconv"

//NumberedGenerator represents numbered placeholder generator i.e. $1, $2 (PostgreSQL) or :1 (Vertica)
type NumberedGenerator struct {
	Prefix string
}

//Resolver returns function that returns next numbered placeholder
func (p *NumberedGenerator) Resolver() func() string {
	counter := 0
	return func() string {
		counter++
		return p.Prefix + strconv.Itoa(counter)
	}
}

//Len calculates length of numbered placeholders from start+1 to start+numOfPlaceholders
func (p *NumberedGenerator) Len(start, numOfPlaceholders int) int {
	result := 0
	for i := start + 1; i <= start+numOfPlaceholders; i++ {
		result += len(p.Prefix) + len(strconv.Itoa(i))
	}
	return result
}

//Style returns placeholder style
func (p *NumberedGenerator) Style() string {
	return p.Prefix + "N"
}
