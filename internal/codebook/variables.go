package codebook

// Response shapes shared by many questions.
var (
	yesNo       = Codes(1, 2, 7, 9)
	healthScale = Codes(1, 2, 3, 4, 5, 7, 9)
	fourOption  = Codes(1, 2, 3, 4, 7, 9)
	threeOption = Codes(1, 2, 3, 7, 9)
	checkupTime = Codes(1, 2, 3, 4, 5, 7, 8, 9)
	sixOption   = Codes(1, 2, 3, 4, 5, 6, 9)
	employment  = Codes(1, 2, 3, 4, 5, 6, 7, 8, 9)
)

// currentVariables are the 2023 data file variable names, in codebook order.
var currentVariables = []FieldRule{
	// Health status
	{ID: "GENHLTH", Name: "General Health", Response: healthScale},
	{ID: "PHYSHLTH", Name: "Physical Health Days", Response: Range(FamilyDays0To30)},
	{ID: "MENTHLTH", Name: "Mental Health Days", Response: Range(FamilyDays0To30)},
	{ID: "POORHLTH", Name: "Poor Health Days", Response: Range(FamilyDays0To30)},

	// Health care access
	{ID: "PRIMINS1", Name: "Primary Insurance", Response: CodeRange(1, 10, 88, 77, 99)},
	{ID: "PERSDOC3", Name: "Personal Doctor", Response: threeOption},
	{ID: "MEDCOST1", Name: "Could Not See Doctor Due to Cost", Response: yesNo},
	{ID: "CHECKUP1", Name: "Last Routine Checkup", Response: checkupTime},

	{ID: "EXERANY2", Name: "Exercise in Past 30 Days", Response: yesNo},

	// Hypertension and cholesterol
	{ID: "BPHIGH6", Name: "Ever Told High Blood Pressure", Response: fourOption},
	{ID: "BPMEDS1", Name: "Taking BP Medication", Response: yesNo},
	{ID: "CHOLCHK3", Name: "Cholesterol Checked", Response: Codes(1, 2, 3, 4, 5, 6, 7, 8, 9)},
	{ID: "TOLDHI3", Name: "Ever Told High Cholesterol", Response: yesNo},
	{ID: "CHOLMED3", Name: "Taking Cholesterol Medication", Response: yesNo},

	// Chronic conditions
	{ID: "CVDINFR4", Name: "Heart Attack", Response: yesNo},
	{ID: "CVDCRHD4", Name: "Coronary Heart Disease", Response: yesNo},
	{ID: "CVDSTRK3", Name: "Stroke", Response: yesNo},
	{ID: "ASTHMA3", Name: "Ever Had Asthma", Response: yesNo},
	{ID: "ASTHNOW", Name: "Still Have Asthma", Response: yesNo},
	{ID: "CHCSCNC1", Name: "Skin Cancer", Response: yesNo},
	{ID: "CHCOCNC1", Name: "Other Cancer", Response: yesNo},
	{ID: "CHCCOPD3", Name: "COPD", Response: yesNo},
	{ID: "ADDEPEV3", Name: "Depressive Disorder", Response: yesNo},
	{ID: "CHCKDNY2", Name: "Kidney Disease", Response: yesNo},
	{ID: "HAVARTH4", Name: "Arthritis", Response: yesNo},
	{ID: "DIABETE4", Name: "Diabetes", Response: fourOption},
	{ID: "DIABAGE4", Name: "Diabetes Age", Response: Range(FamilyDiagnosisAge)},

	// Demographics
	{ID: "MARITAL", Name: "Marital Status", Response: sixOption},
	{ID: "EDUCA", Name: "Education Level", Response: sixOption},
	{ID: "RENTHOM1", Name: "Own or Rent Home", Response: threeOption},
	{ID: "VETERAN3", Name: "Veteran Status", Response: yesNo},
	{ID: "EMPLOY1", Name: "Employment Status", Response: employment},
	{ID: "CHILDREN", Name: "Number of Children", Response: Range(FamilyCount0To87)},
	{ID: "INCOME3", Name: "Income Level", Response: CodeRange(1, 11, 77, 99)},
	{ID: "PREGNANT", Name: "Pregnant", Response: yesNo},

	// Disability
	{ID: "DEAF", Name: "Deaf or Hearing Difficulty", Response: yesNo},
	{ID: "BLIND", Name: "Blind or Vision Difficulty", Response: yesNo},
	{ID: "DECIDE", Name: "Difficulty Concentrating", Response: yesNo},
	{ID: "DIFFWALK", Name: "Difficulty Walking", Response: yesNo},
	{ID: "DIFFDRES", Name: "Difficulty Dressing", Response: yesNo},
	{ID: "DIFFALON", Name: "Difficulty Doing Errands", Response: yesNo},

	// Falls
	{ID: "FALL12MN", Name: "Falls in Past 12 Months", Response: Range(FamilyCount0To76)},
	{ID: "FALLINJ5", Name: "Fall Injuries", Response: Range(FamilyCount0To76)},

	// Tobacco
	{ID: "SMOKE100", Name: "Smoked 100 Cigarettes", Response: yesNo},
	{ID: "SMOKDAY2", Name: "Smoke Frequency", Response: threeOption},
	{ID: "USENOW3", Name: "Smokeless Tobacco Use", Response: threeOption},
	{ID: "ECIGNOW2", Name: "E-Cigarette Use", Response: fourOption},

	// Alcohol
	{ID: "ALCDAY4", Name: "Alcohol Days per Month", Response: Range(FamilyAlcoholFrequency)},
	{ID: "AVEDRNK3", Name: "Average Drinks per Occasion", Response: Range(FamilyDrinks)},
	{ID: "DRNK3GE5", Name: "Binge Drinking Days", Response: Range(FamilyDays0To30)},
	{ID: "MAXDRNKS", Name: "Max Drinks on One Occasion", Response: Range(FamilyDrinks)},

	// Immunization
	{ID: "FLUSHOT7", Name: "Flu Shot in Past Year", Response: yesNo},
	{ID: "PNEUVAC4", Name: "Pneumonia Shot Ever", Response: yesNo},
	{ID: "SHINGLE2", Name: "Shingles Shot", Response: yesNo},

	{ID: "HIVTST7", Name: "HIV Test", Response: yesNo},

	// Safety
	{ID: "SEATBELT", Name: "Seatbelt Use", Response: checkupTime},
	{ID: "DRNKDRI2", Name: "Drinking and Driving", Response: Range(FamilyCount0To76)},

	// COVID
	{ID: "COVIDPO1", Name: "COVID Positive Test", Response: threeOption},
	{ID: "COVIDVA1", Name: "COVID Vaccine", Response: yesNo},
}

// legacyQuestions are questionnaire section codes accepted for older files.
var legacyQuestions = []FieldRule{
	{ID: "CHS.01", Name: "General Health", Response: healthScale},

	{ID: "CHD.01", Name: "Physical Health Days", Response: Range(FamilyDays0To30)},
	{ID: "CHD.02", Name: "Mental Health Days", Response: Range(FamilyDays0To30)},
	{ID: "CHD.03", Name: "Poor Health Days", Response: Range(FamilyDays0To30)},

	{ID: "CHCA.01", Name: "Health Insurance", Response: CodeRange(1, 10, 88, 77, 99)},
	{ID: "CHCA.02", Name: "Personal Doctor", Response: threeOption},
	{ID: "CHCA.03", Name: "Could Not See Doctor Due to Cost", Response: yesNo},
	{ID: "CHCA.04", Name: "Last Routine Checkup", Response: checkupTime},

	{ID: "CEXE.01", Name: "Exercise in Past 30 Days", Response: yesNo},

	{ID: "CHYP.01", Name: "Ever Told High Blood Pressure", Response: fourOption},
	{ID: "CHYP.02", Name: "Taking BP Medication", Response: yesNo},

	{ID: "CCHO.01", Name: "Cholesterol Checked", Response: yesNo},
	{ID: "CCHO.02", Name: "Last Cholesterol Check", Response: checkupTime},
	{ID: "CCHO.03", Name: "Ever Told High Cholesterol", Response: yesNo},
	{ID: "CCHO.04", Name: "Taking Cholesterol Medication", Response: yesNo},

	{ID: "CCHC.01", Name: "Heart Attack", Response: yesNo},
	{ID: "CCHC.02", Name: "Angina/CHD", Response: yesNo},
	{ID: "CCHC.03", Name: "Stroke", Response: yesNo},
	{ID: "CCHC.04", Name: "Asthma Ever", Response: yesNo},
	{ID: "CCHC.05", Name: "Asthma Now", Response: yesNo},
	{ID: "CCHC.06", Name: "Skin Cancer", Response: yesNo},
	{ID: "CCHC.07", Name: "Other Cancer", Response: yesNo},
	{ID: "CCHC.08", Name: "COPD", Response: yesNo},
	{ID: "CCHC.09", Name: "Depression", Response: yesNo},
	{ID: "CCHC.10", Name: "Kidney Disease", Response: yesNo},
	{ID: "CCHC.11", Name: "Arthritis", Response: yesNo},
	{ID: "CCHC.12", Name: "Diabetes", Response: fourOption},
	{ID: "CCHC.13", Name: "Diabetes Age", Response: Range(FamilyAge)},

	{ID: "CDEM.01", Name: "Age", Response: Range(FamilyAge)},
	{ID: "CDEM.02", Name: "Hispanic Origin", Response: healthScale},
	{ID: "CDEM.03", Name: "Race", Response: Codes(10, 20, 30, 40, 41, 42, 43, 44, 45, 46, 47, 50, 51, 52, 53, 54, 60, 77, 88, 99)},
	{ID: "CDEM.04", Name: "Marital Status", Response: sixOption},
	{ID: "CDEM.05", Name: "Education", Response: sixOption},
	{ID: "CDEM.06", Name: "Home Ownership", Response: threeOption},
	{ID: "CDEM.07", Name: "County", Response: Range(FamilyCountyFIPS)},
	{ID: "CDEM.08", Name: "Zip Code", Response: Range(FamilyZIP)},
	{ID: "CDEM.12", Name: "Veteran Status", Response: healthScale},
	{ID: "CDEM.13", Name: "Employment", Response: employment},
	{ID: "CDEM.14", Name: "Children in Household", Response: Range(FamilyCount0To87)},
	{ID: "CDEM.15", Name: "Income", Response: CodeRange(1, 11, 77, 99)},
	{ID: "CDEM.16", Name: "Weight", Response: Range(FamilyWeight)},
	{ID: "CDEM.17", Name: "Height Feet", Response: Codes(3, 4, 5, 6, 7, 9)},
	{ID: "CDEM.18", Name: "Height Inches", Response: CodeRange(0, 11, 99)},

	{ID: "CDIS.01", Name: "Blind", Response: yesNo},
	{ID: "CDIS.02", Name: "Difficulty Concentrating", Response: yesNo},
	{ID: "CDIS.03", Name: "Difficulty Walking", Response: yesNo},
	{ID: "CDIS.04", Name: "Difficulty Dressing", Response: yesNo},
	{ID: "CDIS.05", Name: "Difficulty Errands", Response: yesNo},
	{ID: "CDIS.06", Name: "Deaf", Response: yesNo},

	{ID: "CFAL.01", Name: "Falls in Past Year", Response: Range(FamilyCount0To76)},
	{ID: "CFAL.02", Name: "Fall Injuries", Response: Range(FamilyCount0To76)},

	{ID: "CTOB.01", Name: "Smoked 100 Cigarettes", Response: yesNo},
	{ID: "CTOB.02", Name: "Smoke Frequency", Response: threeOption},
	{ID: "CTOB.03", Name: "Smokeless Tobacco", Response: threeOption},
	{ID: "CTOB.04", Name: "E-Cigarette Use", Response: fourOption},

	{ID: "CALC.01", Name: "Alcohol in Past 30 Days", Response: yesNo},
	{ID: "CALC.02", Name: "Days Drinking", Response: Range(FamilyDays1To30)},
	{ID: "CALC.03", Name: "Drinks Per Occasion", Response: Range(FamilyDrinks)},
	{ID: "CALC.04", Name: "Binge Drinking Days", Response: Range(FamilyDays0To30)},
	{ID: "CALC.05", Name: "Max Drinks", Response: Range(FamilyDrinks)},

	{ID: "CIMM.01", Name: "Flu Shot Past Year", Response: yesNo},
	{ID: "CIMM.02", Name: "Flu Shot Month", Response: CodeRange(1, 12, 77, 99)},
	{ID: "CIMM.03", Name: "Pneumonia Shot", Response: yesNo},
	{ID: "CIMM.04", Name: "Shingles Shot", Response: yesNo},

	{ID: "CHIV.01", Name: "HIV Test", Response: yesNo},
	{ID: "CHIV.02", Name: "HIV Risk", Response: yesNo},

	{ID: "CSBD.01", Name: "Seatbelt Use", Response: checkupTime},
	{ID: "CSBD.02", Name: "Drinking and Driving", Response: Range(FamilyCount0To76)},
}
