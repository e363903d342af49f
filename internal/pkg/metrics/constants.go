package metrics

// Category label values, matching the two error taxonomy variants.
const (
	CategoryUser   = "user"
	CategorySystem = "system"
)
