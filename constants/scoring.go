package constants

// ScorePerLock is awarded per level for a lock that clears no rows
const ScorePerLock = 10

// RowsPerLevel is the number of cleared rows between level increments
const RowsPerLevel = 10

// ScoreForRows maps rows cleared by one lock to base points, indexed by count
// Counts above 4 use the last entry
var ScoreForRows = [...]int{0, 50, 100, 300, 1200}
