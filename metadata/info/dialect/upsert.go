package dialect

//UpsertFeatures represents dialect supported merge features bitset
type UpsertFeatures int

const (
	//UpsertMerge MERGE INTO ... USING ... WHEN MATCHED/WHEN NOT MATCHED, i.e. SQL Server, Vertica
	UpsertMerge = UpsertFeatures(1 << iota)
	//UpsertMergeByTarget renders WHEN NOT MATCHED BY TARGET, i.e. SQL Server
	UpsertMergeByTarget
	//UpsertMergeMatchedFirst renders WHEN MATCHED clause before WHEN NOT MATCHED, i.e. Vertica
	UpsertMergeMatchedFirst
	//UpsertMergeSelectSource renders source row as SELECT ? AS col instead of VALUES row constructor
	UpsertMergeSelectSource
	//UpsertUpdateOrInsert runs UPDATE by key followed by INSERT when no row was affected, i.e. SQLite, MySQL, PostgreSQL
	UpsertUpdateOrInsert

	//UpsertMergeFeatures groups all MERGE related features
	UpsertMergeFeatures = UpsertMerge | UpsertMergeByTarget | UpsertMergeMatchedFirst | UpsertMergeSelectSource
)

func (t UpsertFeatures) has(feature UpsertFeatures) bool {
	return t&feature == feature
}

//Merge returns true if dialect supports MERGE
func (t UpsertFeatures) Merge() bool {
	return t.has(UpsertMerge)
}

//ByTarget returns true if NOT MATCHED clause is qualified with BY TARGET
func (t UpsertFeatures) ByTarget() bool {
	return t.Merge() && t.has(UpsertMergeByTarget)
}

//MatchedFirst returns true if MATCHED clause precedes NOT MATCHED clause
func (t UpsertFeatures) MatchedFirst() bool {
	return t.Merge() && t.has(UpsertMergeMatchedFirst)
}

//SelectSource returns true if source row uses SELECT projection
func (t UpsertFeatures) SelectSource() bool {
	return t.Merge() && t.has(UpsertMergeSelectSource)
}
