// Package screens holds the keys screens use in the router params bag.
package screens

// Params keys.
const (
	// ParamHand holds the wizard.Hand chosen for a scan.
	ParamHand = "hand"
	// ParamImage holds the palm.Image that was analyzed.
	ParamImage = "image"
	// ParamAnalysis holds the *palm.Reading produced by the gateway.
	ParamAnalysis = "analysis"
	// ParamFrom holds the screen.ID that opened the destination.
	ParamFrom = "from"
	// ParamTitle holds a display title for the placeholder screen.
	ParamTitle = "title"
)
