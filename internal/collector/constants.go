package collector

// Pattern constants.
const DefaultIncludePattern = "*"

// Percentage constants.
const MaxPercentage = 100
