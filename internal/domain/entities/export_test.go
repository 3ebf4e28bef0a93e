package entities

// ResetForTest exposes reset to the tests of this package only.
func (it *StatsAggregator) ResetForTest() {
	it.reset()
}
