package catalog

// Статические данные каталога. Названия позиций - на иврите, как в
// прайс-листах склада; менять написание нельзя.
var exercises = []Exercise{
	{
		ID:   1,
		Name: "ריבוי משימות",
		SubActivities: []SubActivity{
			{
				ID:   1,
				Name: "שטיח מעופף",
				Equipment: []EquipmentRequirement{
					{Item: "יריעת שטיח", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   2,
				Name: "טנגרם",
				Equipment: []EquipmentRequirement{
					{Item: "ערכת משולשים + צלליות", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   3,
				Name: "הטלת ביצה",
				Equipment: []EquipmentRequirement{
					{Item: "ביצה", Quantity: 1, Scalable: true},
					{Item: "10 קשים", Quantity: 1, Scalable: true},
					{Item: `10 ס"מ סרט הדבקה`, Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   4,
				Name: "קפיצה על חבל",
				Equipment: []EquipmentRequirement{
					{Item: "חבל", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   5,
				Name: "גשר דה וינצ'י",
				Equipment: []EquipmentRequirement{
					{Item: "10 מקלות מטאטא קצרים (1 מ')", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   6,
				Name: "אוריגמי קובייה",
				Equipment: []EquipmentRequirement{
					{Item: "40 ניירות צבעוניים", Quantity: 1, Scalable: true},
					{Item: "דף הוראות", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   7,
				Name: "הקפצת כדור 50 פעמים רצוף",
				Equipment: []EquipmentRequirement{
					{Item: "כדור", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   8,
				Name: "מגדל מרשמלו",
				Equipment: []EquipmentRequirement{
					{Item: "20 מקלות מקרוני", Quantity: 1, Scalable: true},
					{Item: "מטר נייר דבק", Quantity: 1, Scalable: true},
					{Item: "מטר חוט", Quantity: 1, Scalable: true},
					{Item: "מרשמלו", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   9,
				Name: "נסיוב",
				Equipment: []EquipmentRequirement{
					{Item: "בקבוק כחול+אדום", Quantity: 1, Scalable: true},
					{Item: "6 חבלים לבנים", Quantity: 1, Scalable: true},
					{Item: "מיכל אגירה", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   10,
				Name: "טבעת צוות",
				Equipment: []EquipmentRequirement{
					{Item: "כדור", Quantity: 1, Scalable: true},
					{Item: "טבעת קשורה לחוטים לבנים", Quantity: 1, Scalable: true},
				},
			},
			{
				ID:   11,
				Name: "קשר סבתא",
				Equipment: []EquipmentRequirement{
					{Item: "חבל", Quantity: 1, Scalable: true},
				},
			},
		},
	},
	{
		ID:   2,
		Name: "ג'אגלינג",
		Equipment: []EquipmentRequirement{
			{Item: "דליים", Quantity: 2, Scalable: true},
			{Item: "כדורים וחפצים", Quantity: 20, Scalable: true},
			{Item: "בלונים עם מים", Quantity: 12, Scalable: true},
			{Item: "ביצים", Quantity: 6, Scalable: true},
		},
	},
	{
		ID:   3,
		Name: "פירמידת טרזן",
		Equipment: []EquipmentRequirement{
			{Item: "חבל אדום", Quantity: 1, Scalable: true},
			{Item: "מעגלי חבלים צהובים", Quantity: 20, Scalable: true},
			{Item: "עיגולי סיליקון (מדרכי מקלדת)", Quantity: 6, Scalable: true},
		},
	},
	{
		ID:   4,
		Name: "שלושת האיים",
		Equipment: []EquipmentRequirement{
			{Item: "סט חבלים (כחול, אדום, צהוב)", Quantity: 1, Scalable: true},
			{Item: "דלי עם 3 כדורי טניס", Quantity: 1, Scalable: true},
			{Item: "כיסויי עיניים", Quantity: 10, Scalable: true},
			{Item: "שעון עצר", Quantity: 1, Scalable: false},
			{Item: "ערכת חידות (אזיקים, מסמרים, טנגרם)", Quantity: 1, Scalable: true},
			{Item: "מדרכי עץ / מנעלים", Quantity: 1, Scalable: true},
		},
	},
	{
		ID:   5,
		Name: "יהלום",
		Equipment: []EquipmentRequirement{
			{Item: "מקלות במבוק", Quantity: 20, Scalable: true},
			{Item: "מסקינטייפ", Quantity: 4, Scalable: true},
			{Item: "מספריים", Quantity: 1, Scalable: true},
			{Item: "חבל אדום", Quantity: 1, Scalable: true},
			{Item: "מדבקות לבנות + טוש", Quantity: 20, Scalable: true},
			{Item: "אופציונלי: ערכת נסיוב", Quantity: 1, Scalable: true},
		},
	},
	{
		ID:   6,
		Name: "מקלדת",
		Equipment: []EquipmentRequirement{
			{Item: "חבל כחול", Quantity: 1, Scalable: true},
			{Item: "סט מספרים 1-30", Quantity: 1, Scalable: true},
			{Item: "חבלים אדומים", Quantity: 2, Scalable: true},
		},
	},
	{
		ID:      7,
		Name:    "ניווט",
		Options: []string{"פארק הירקון", "נען", "ברוטיה", "עקבה", "פארק קנדה", "נחל גחר", "כתף שאול"},
		Equipment: []EquipmentRequirement{
			{Item: "מפות ומצפנים בהתאם לתא שטח", Quantity: 1, Scalable: true},
		},
	},
	{
		ID:    8,
		Name:  "רוב גולדברג",
		Notes: "ציוד מחושב לקבוצה של 18 משתתפים",
		Equipment: []EquipmentRequirement{
			{Item: "ערכות פלסטיק", Quantity: 3, Scalable: true},
			{Item: "במבוקים", Quantity: 18, Scalable: true},
			{Item: "מדרכי עץ", Quantity: 12, Scalable: true},
			{Item: "ערכת צינורות PVC ומקלות מטאטא", Quantity: 4, Scalable: true},
			{Item: "בלונים ומסקינטייפ ספייר", Quantity: 1, Scalable: true},
		},
	},
	{
		ID:   9,
		Name: "קוד פתוח",
		Equipment: []EquipmentRequirement{
			{Item: "תיבות עץ (עם 2 מנעולי קומבינציה ו-2 מפתחות)", Quantity: 3, Scalable: true},
			{Item: "דלי + נסורת + מפתחות בלאי", Quantity: 1, Scalable: true},
			{Item: "דף למינציה (טבלת שליטה)", Quantity: 1, Scalable: false},
			{Item: "חבל אדום", Quantity: 1, Scalable: true},
			{Item: "פותחן יין", Quantity: 1, Scalable: false},
			{Item: `כוסות חד"פ ליין`, Quantity: 50, Scalable: true},
			{Item: "בקבוקי יין", Quantity: 2, Scalable: true},
			{Item: "אופציונלי: שטיח מעופף, אבנים לרוג'ום", Quantity: 1, Scalable: true},
		},
	},
}
