package codebook

// jurisdiction is one row of the geographic reference table.
type jurisdiction struct {
	Abbr string
	Name string
	FIPS int // 0 when the jurisdiction has no code in raw survey files
}

// jurisdictions lists every location accepted in aggregated files.
// Raw survey files only carry the entries with a FIPS code.
var jurisdictions = []jurisdiction{
	{"AL", "Alabama", 1}, {"AK", "Alaska", 2}, {"AZ", "Arizona", 4}, {"AR", "Arkansas", 5},
	{"CA", "California", 6}, {"CO", "Colorado", 8}, {"CT", "Connecticut", 9}, {"DE", "Delaware", 10},
	{"FL", "Florida", 12}, {"GA", "Georgia", 13}, {"HI", "Hawaii", 15}, {"ID", "Idaho", 16},
	{"IL", "Illinois", 17}, {"IN", "Indiana", 18}, {"IA", "Iowa", 19}, {"KS", "Kansas", 20},
	{"KY", "Kentucky", 21}, {"LA", "Louisiana", 22}, {"ME", "Maine", 23}, {"MD", "Maryland", 24},
	{"MA", "Massachusetts", 25}, {"MI", "Michigan", 26}, {"MN", "Minnesota", 27}, {"MS", "Mississippi", 28},
	{"MO", "Missouri", 29}, {"MT", "Montana", 30}, {"NE", "Nebraska", 31}, {"NV", "Nevada", 32},
	{"NH", "New Hampshire", 33}, {"NJ", "New Jersey", 34}, {"NM", "New Mexico", 35}, {"NY", "New York", 36},
	{"NC", "North Carolina", 37}, {"ND", "North Dakota", 38}, {"OH", "Ohio", 39}, {"OK", "Oklahoma", 40},
	{"OR", "Oregon", 41}, {"PA", "Pennsylvania", 42}, {"RI", "Rhode Island", 44}, {"SC", "South Carolina", 45},
	{"SD", "South Dakota", 46}, {"TN", "Tennessee", 47}, {"TX", "Texas", 48}, {"UT", "Utah", 49},
	{"VT", "Vermont", 50}, {"VA", "Virginia", 51}, {"WA", "Washington", 53}, {"WV", "West Virginia", 54},
	{"WI", "Wisconsin", 55}, {"WY", "Wyoming", 56}, {"DC", "District of Columbia", 11},
	{"PR", "Puerto Rico", 72}, {"GU", "Guam", 66}, {"VI", "Virgin Islands", 78},
	{"AS", "American Samoa", 0}, {"MP", "Northern Mariana Islands", 0}, {"US", "United States", 0},
}

var classes = []string{
	"Chronic Health Indicators", "Health Risk Behaviors", "Health Status",
	"Health Care Access/Coverage", "Immunization", "Oral Health", "Disability",
	"Demographics", "Tobacco Use", "Alcohol Consumption", "Physical Activity",
	"Nutrition", "Overweight and Obesity", "Cardiovascular Disease",
	"Cancer Screening", "Mental Health", "Injury",
	// Chronic Disease Indicators categories
	"Health Outcomes", "Unhealthy Behaviors", "Prevention", "Health Care",
	"Reproductive Health", "Cross-Cutting", "Disabilities", "Older Adults",
}

var topics = []string{
	"Obesity", "Current Smoker Status", "Diabetes", "Binge Drinking",
	"Heavy Drinking", "Exercise", "Physical Activity Index", "Aerobic Activity",
	"High Blood Pressure", "Cholesterol High", "Cholesterol Checked",
	"Depression", "Asthma", "COPD", "Arthritis", "Cardiovascular Disease",
	"Kidney", "Other Cancer", "Overall Health", "Fair or Poor Health",
	"Health Care Coverage", "Health Care Cost", "Personal Care Provider",
	"Last Checkup", "Flu Shot", "Pneumonia Vaccination", "HIV Test",
	"E-Cigarette Use", "Alcohol Consumption", "Drink and Drive",
	"Disability status", "Hearing", "Healthy Days", "Heart Attack", "Stroke",
	"Coronary Heart Disease", "Skin Cancer", "Chronic Kidney Disease",
	"Age", "Race", "Education", "Employment", "Income",
	"Marital Status", "Number of Children", "BMI Categories", "Seatbelt Use",
	// Chronic Disease Indicators short question text
	"Current Smoking", "Cholesterol Screening", "Mammography", "Teeth Loss",
	"All Teeth Lost", "Colorectal Cancer Screening", "Cervical Cancer Screening",
	"Taking BP Medication", "Physical Inactivity", "Sleep", "Mental Health",
	"Cancer (except skin)", "Current Asthma", "Lack of Health Insurance",
	"Annual Checkup", "Routine Checkup", "No Leisure Time Physical Activity",
}

// breakout is a demographic dimension and its allowed categories.
type breakout struct {
	Name       string
	Categories []string
}

var breakouts = []breakout{
	{"Overall", []string{"Overall"}},
	{"Gender", []string{"Male", "Female", "Overall"}},
	{"Sex", []string{"Male", "Female", "Overall"}},
	{"Age Group", []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+", "65 or older", "Overall"}},
	{"Age", []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+", "Overall"}},
	{"Race/Ethnicity", []string{
		"White, non-Hispanic", "Black, non-Hispanic", "Hispanic",
		"Asian, non-Hispanic", "American Indian/Alaska Native",
		"Multiracial, non-Hispanic", "Other, non-Hispanic", "Overall",
	}},
	{"Education", []string{
		"Less than high school", "High school graduate",
		"Some college or technical school", "College graduate", "Overall",
	}},
	{"Income", []string{
		"Less than $15,000", "$15,000-$24,999", "$25,000-$34,999",
		"$35,000-$49,999", "$50,000+", "$75,000+", "Overall",
	}},
}

var dataValueTypes = []string{
	"Crude Prevalence", "Age-adjusted Prevalence", "Mean", "Median",
	"Number", "Percent", "Rate", "Weighted Frequency",
	"Crude prevalence", "Age-adjusted prevalence", "Age-Adjusted Prevalence",
	"AgeAdjPrv", "CrdPrv", "Ageadjprv",
}

var dataValueUnits = []string{"%", "per 100,000", "per 1,000", "Number", "Years", "Days"}

var datasources = []string{"BRFSS", "Behavioral Risk Factor Surveillance System"}

var responses = []string{"Yes", "No", "yes", "no", "YES", "NO"}

// columnSynonyms maps separator-stripped spellings to canonical column names.
var columnSynonyms = map[string]string{
	// Chronic Disease Indicators export
	"stateabbr":           "locationabbr",
	"statedesc":           "locationdesc",
	"measure":             "question",
	"shortquestiontext":   "topic",
	"category":            "class",
	"lowconfidencelimit":  "confidence_limit_low",
	"highconfidencelimit": "confidence_limit_high",
	"populationcount":     "sample_size",

	"state":        "locationabbr",
	"statename":    "locationdesc",
	"questiontext": "question",
	"prevalence":   "data_value",
	"value":        "data_value",
	"cilow":        "confidence_limit_low",
	"cihigh":       "confidence_limit_high",
	"conflow":      "confidence_limit_low",
	"confhigh":     "confidence_limit_high",
}

// aggregatedColumn is a column of the aggregated layout.
type aggregatedColumn struct {
	Name        string
	Description string
}

var aggregatedRequired = []aggregatedColumn{
	{"year", "Survey year (e.g., 2023)"},
	{"locationabbr", "State abbreviation (e.g., TX, CA, NY)"},
	{"locationdesc", "State full name (e.g., Texas, California)"},
	{"topic", "Health topic category (e.g., Obesity, Diabetes, Current Smoking)"},
	{"question", "Full question text describing the measure"},
	{"data_value", "The prevalence value or percentage"},
}

var aggregatedOptional = []string{
	"class", "response", "break_out", "break_out_category", "sample_size",
	"confidence_limit_low", "confidence_limit_high", "data_value_unit",
	"data_value_type", "datasource", "classid", "topicid", "locationid",
	"breakoutid", "breakoutcategoryid", "questionid", "responseid",
	"display_order", "geolocation",
}

// Format detection signals.
var (
	rawIndicators        = []string{"_state", "_psu", "seqno", "dispcode", "iyear", "imonth", "iday"}
	aggregatedIndicators = []string{"locationabbr", "locationdesc", "topic", "data_value", "confidence_limit_low"}
	questionPrefixes     = []string{"CTOB", "CCHC", "CDEM", "CHCA", "CHD", "CHS"}
	systemColumns        = []string{"_STATE", "_PSU", "SEQNO", "IYEAR", "IMONTH", "IDAY", "DISPCODE"}
)
