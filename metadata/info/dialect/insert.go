package dialect

//InsertFeatures represents dialect supported insert features bitset
type InsertFeatures int

const (
	//InsertWithSingleValues renders one row per INSERT statement
	InsertWithSingleValues = InsertFeatures(0)
	//InsertWithMultiValues renders INSERT ... VALUES (...),(...) batches
	InsertWithMultiValues = InsertFeatures(1)
)

//MultiValues returns true if several rows can share one INSERT statement
func (t InsertFeatures) MultiValues() bool {
	return t&InsertWithMultiValues != 0
}
