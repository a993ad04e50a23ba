package screen

// ID names a top-level destination. The set is closed; new destinations
// are added here.
type ID int

const (
	Splash ID = iota
	Language
	Onboarding
	ProfileSetup
	Home

	PalmScan
	PalmResult
	AIChat

	TarotCategory
	TarotReading

	Horoscope
	HoroscopeDetail

	DailyGuidance
	LoveReading
	Settings
	History
	Privacy
)

var idNames = [...]string{
	Splash:          "SPLASH",
	Language:        "LANGUAGE",
	Onboarding:      "ONBOARDING",
	ProfileSetup:    "PROFILE_SETUP",
	Home:            "HOME",
	PalmScan:        "PALM_SCAN",
	PalmResult:      "PALM_RESULT",
	AIChat:          "AI_CHAT",
	TarotCategory:   "TAROT_CATEGORY",
	TarotReading:    "TAROT_READING",
	Horoscope:       "HOROSCOPE",
	HoroscopeDetail: "HOROSCOPE_DETAIL",
	DailyGuidance:   "DAILY_GUIDANCE",
	LoveReading:     "LOVE_READING",
	Settings:        "SETTINGS",
	History:         "HISTORY",
	Privacy:         "PRIVACY",
}

func (id ID) String() string {
	if id < 0 || int(id) >= len(idNames) {
		return "UNKNOWN"
	}
	return idNames[id]
}

// All returns every screen identifier in declaration order.
func All() []ID {
	ids := make([]ID, len(idNames))
	for i := range idNames {
		ids[i] = ID(i)
	}
	return ids
}
