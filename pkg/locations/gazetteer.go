package locations

// DefaultGazetteer covers the places that recur in common foreign-policy
// acts. Longer compound names ("South Sudan", "Czech Republic") carry their
// own entries so the short forms are not over-counted.
func DefaultGazetteer() Gazetteer {
	return Gazetteer{
		"Afghanistan":              {"Afghanistan", "Afghan"},
		"Albania":                  {"Albania", "Albanian"},
		"Balkans":                  {"Balkans", "Western Balkans"},
		"Belarus":                  {"Belarus", "Belarusian"},
		"Bosnia and Herzegovina":   {"Bosnia and Herzegovina", "Bosnia", "Bosnian"},
		"Burma/Myanmar":            {"Myanmar", "Burma", "Burmese"},
		"Central African Republic": {"Central African Republic"},
		"China":                    {"China", "Chinese"},
		"Congo":                    {"Democratic Republic of the Congo", "Congo", "Congolese"},
		"Czechia":                  {"Czech Republic", "Czechia", "Czech"},
		"Egypt":                    {"Egypt", "Egyptian"},
		"Georgia":                  {"Georgia", "Georgian"},
		"Iran":                     {"Iran", "Iranian"},
		"Iraq":                     {"Iraq", "Iraqi"},
		"Israel":                   {"Israel", "Israeli"},
		"Kosovo":                   {"Kosovo"},
		"Lebanon":                  {"Lebanon", "Lebanese"},
		"Libya":                    {"Libya", "Libyan"},
		"Mali":                     {"Mali", "Malian"},
		"Mediterranean":            {"Mediterranean", "Mediterranean Sea"},
		"Moldova":                  {"Moldova", "Moldovan"},
		"North Korea":              {"North Korea", "Democratic People's Republic of Korea", "DPRK"},
		"Palestine":                {"Palestine", "Palestinian"},
		"Russia":                   {"Russia", "Russian Federation", "Russian"},
		"Serbia":                   {"Serbia", "Serbian"},
		"Somalia":                  {"Somalia", "Somali"},
		"South Sudan":              {"South Sudan", "South Sudanese"},
		"Sudan":                    {"Sudan", "Sudanese"},
		"Switzerland":              {"Switzerland", "Swiss"},
		"Syria":                    {"Syria", "Syrian"},
		"Tunisia":                  {"Tunisia", "Tunisian"},
		"Turkey":                   {"Turkey", "Turkish"},
		"Ukraine":                  {"Ukraine", "Ukrainian"},
		"United States":            {"United States", "USA"},
		"Vatican":                  {"Vatican City", "Vatican", "Holy See"},
		"Venezuela":                {"Venezuela", "Venezuelan"},
		"Yemen":                    {"Yemen", "Yemeni"},
		"Zimbabwe":                 {"Zimbabwe", "Zimbabwean"},
	}
}
