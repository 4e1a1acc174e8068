package i18n

var messages = map[Locale]map[string]string{
	RU: {
		"nav.home":        "Главная",
		"nav.analyses":    "Анализы",
		"nav.news":        "Новости",
		"nav.doctors":     "Врачам",
		"nav.contacts":    "Контакты",
		"home.services":   "Услуги",
		"home.reviews":    "Отзывы",
		"home.news":       "Новости",
		"analyses.price":  "Цена",
		"analyses.days":   "Срок (дней)",
		"doctors.title":   "Регистрация врача",
		"doctors.submit":  "Отправить",
		"doctors.thanks":  "Спасибо! Мы свяжемся с вами.",
		"form.error":      "Не удалось отправить форму. Проверьте данные и попробуйте снова.",
		"news.empty":      "Новостей пока нет.",
		"contacts.title":  "Контакты",
		"documents.title": "Документы",
	},
	KZ: {
		"nav.home":        "Басты бет",
		"nav.analyses":    "Талдаулар",
		"nav.news":        "Жаңалықтар",
		"nav.doctors":     "Дәрігерлерге",
		"nav.contacts":    "Байланыс",
		"home.services":   "Қызметтер",
		"home.reviews":    "Пікірлер",
		"home.news":       "Жаңалықтар",
		"analyses.price":  "Бағасы",
		"analyses.days":   "Мерзімі (күн)",
		"doctors.title":   "Дәрігерді тіркеу",
		"doctors.submit":  "Жіберу",
		"doctors.thanks":  "Рахмет! Біз сізбен хабарласамыз.",
		"form.error":      "Форманы жіберу мүмкін болмады. Деректерді тексеріп, қайталап көріңіз.",
		"news.empty":      "Әзірге жаңалықтар жоқ.",
		"contacts.title":  "Байланыс",
		"documents.title": "Құжаттар",
	},
	EN: {
		"nav.home":        "Home",
		"nav.analyses":    "Analyses",
		"nav.news":        "News",
		"nav.doctors":     "For doctors",
		"nav.contacts":    "Contacts",
		"home.services":   "Services",
		"home.reviews":    "Reviews",
		"home.news":       "News",
		"analyses.price":  "Price",
		"analyses.days":   "Turnaround (days)",
		"doctors.title":   "Doctor registration",
		"doctors.submit":  "Submit",
		"doctors.thanks":  "Thank you! We will contact you.",
		"form.error":      "The form could not be submitted. Check the fields and try again.",
		"news.empty":      "No news yet.",
		"contacts.title":  "Contacts",
		"documents.title": "Documents",
	},
}

// T returns the UI string for key, falling back to Default and then to the key itself
func T(l Locale, key string) string {
	if msg, ok := messages[l][key]; ok {
		return msg
	}
	if msg, ok := messages[Default][key]; ok {
		return msg
	}
	return key
}
