package components

// RegionChosenMsg is sent when the user confirms a region in the picker.
type RegionChosenMsg struct {
	Region string
}
