package database

import "fmt"

//Product represents database product version
type Product struct {
	Name    string
	Major   int
	Minor   int
	Release int
}

//AtLeast returns true if product version is at least major.minor
func (p *Product) AtLeast(major, minor int) bool {
	if p.Major != major {
		return p.Major > major
	}
	return p.Minor >= minor
}

func (p *Product) String() string {
	if p.Name == "" {
		return fmt.Sprintf("%v.%v.%v", p.Major, p.Minor, p.Release)
	}
	return fmt.Sprintf("%v %v.%v.%v", p.Name, p.Major, p.Minor, p.Release)
}
