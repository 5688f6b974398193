// Package i18n holds the interface strings served to Arabic and French
// clients. French is the fallback language; Arabic renders right to left.
package i18n

const (
	LangAr = "ar"
	LangFr = "fr"

	DefaultLang = LangFr
)

var translations = map[string]map[string]string{
	LangAr: {
		"dashboard":         "لوحة التحكم",
		"subscribers":       "المشتركون",
		"billing":           "الفواتير",
		"payments":          "المدفوعات",
		"reports":           "التقارير",
		"settings":          "الإعدادات",
		"welcome":           "مرحباً بك",
		"overview":          "نظرة عامة",
		"totalSubscribers":  "إجمالي المشتركين",
		"activeConnections": "الاشتراكات النشطة",
		"monthlyRevenue":    "الإيرادات الشهرية",
		"collectionRate":    "نسبة التحصيل",
		"outstandingBills":  "الفواتير المستحقة",
		"recentActivity":    "النشاط الأخير",
		"addSubscriber":     "إضافة مشترك",
		"searchSubscribers": "البحث عن مشترك",
		"name":              "الاسم",
		"address":           "العنوان",
		"phone":             "الهاتف",
		"meterNumber":       "رقم العداد",
		"status":            "الحالة",
		"actions":           "الإجراءات",
		"active":            "نشط",
		"inactive":          "غير نشط",
		"suspended":         "موقوف",
		"save":              "حفظ",
		"cancel":            "إلغاء",
		"edit":              "تعديل",
		"delete":            "حذف",
		"view":              "عرض",
		"add":               "إضافة",
		"search":            "بحث",
		"export":            "تصدير",
	},
	LangFr: {
		"dashboard":         "Tableau de bord",
		"subscribers":       "Abonnés",
		"billing":           "Facturation",
		"payments":          "Paiements",
		"reports":           "Rapports",
		"settings":          "Paramètres",
		"welcome":           "Bienvenue",
		"overview":          "Aperçu",
		"totalSubscribers":  "Total des abonnés",
		"activeConnections": "Raccordements actifs",
		"monthlyRevenue":    "Revenus mensuels",
		"collectionRate":    "Taux de recouvrement",
		"outstandingBills":  "Factures impayées",
		"recentActivity":    "Activité récente",
		"addSubscriber":     "Ajouter un abonné",
		"searchSubscribers": "Rechercher un abonné",
		"name":              "Nom",
		"address":           "Adresse",
		"phone":             "Téléphone",
		"meterNumber":       "Numéro de compteur",
		"status":            "Statut",
		"actions":           "Actions",
		"active":            "Actif",
		"inactive":          "Inactif",
		"suspended":         "Suspendu",
		"save":              "Enregistrer",
		"cancel":            "Annuler",
		"edit":              "Modifier",
		"delete":            "Supprimer",
		"view":              "Voir",
		"add":               "Ajouter",
		"search":            "Rechercher",
		"export":            "Exporter",
	},
}

// ValidLang reports whether lang is a supported language code.
func ValidLang(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Translate looks up key in lang, falling back to the default language and
// finally to the key itself so missing entries stay visible rather than
// rendering blank.
func Translate(lang, key string) string {
	if table, ok := translations[lang]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	if lang != DefaultLang {
		if v, ok := translations[DefaultLang][key]; ok {
			return v
		}
	}
	return key
}

// Table returns a copy of the full translation table for lang. Unknown
// languages fall back to the default language.
func Table(lang string) map[string]string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLang]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// IsRTL reports whether lang renders right to left.
func IsRTL(lang string) bool {
	return lang == LangAr
}
