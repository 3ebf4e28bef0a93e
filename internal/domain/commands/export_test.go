package commands

// ParseRemoteTip exports parseRemoteTip for testing.
var ParseRemoteTip = parseRemoteTip //nolint:gochecknoglobals // test export

// ClassifyUpgrades exports classifyUpgrades for testing.
var ClassifyUpgrades = classifyUpgrades //nolint:gochecknoglobals // test export
