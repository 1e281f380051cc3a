package web

import "github.com/umputun/crewbook/app/enums"

// labels holds all user-visible texts of the UI for one language
type labels struct {
	Title       string
	Yes         string
	No          string
	Placeholder string
	Empty       string
	Delete      string
	ClearAll    string
	ConfirmAll  string
	Cancel      string
	MissingKind string
	SaveFailed  string
	Add         string
	Count       string
	ChooseKind  string
	Kinds       map[string]string // kind name -> display name in the selector

	Headers []string // table columns, in cell order

	FirstName       string
	LastName        string
	Age             string
	HasKids         string
	HireDate        string
	Rank            string
	Specialty       string
	NightShift      string
	LicenseCategory string
	ExperienceYears string
	VehicleType     string
}

var labelsEn = labels{
	Title:       "Workers",
	Yes:         "Yes",
	No:          "No",
	Placeholder: "—",
	Empty:       "Add the first worker",
	Delete:      "Delete",
	ClearAll:    "Clear all",
	ConfirmAll:  "Delete everything?",
	Cancel:      "Cancel",
	MissingKind: "Choose a class (Plumber or Driver)",
	SaveFailed:  "Failed to save workers",
	Add:         "Add",
	Count:       "Total",
	ChooseKind:  "— class —",
	Kinds:       map[string]string{"Plumber": "Plumber", "Driver": "Driver"},
	Headers: []string{"Class", "First name", "Last name", "Age", "Kids", "Hire date",
		"Rank", "Specialty", "Night shift", "License", "Experience", "Vehicle"},
	FirstName:       "First name",
	LastName:        "Last name",
	Age:             "Age",
	HasKids:         "Has kids",
	HireDate:        "Hire date",
	Rank:            "Rank",
	Specialty:       "Specialty",
	NightShift:      "Night shift",
	LicenseCategory: "License category",
	ExperienceYears: "Experience, years",
	VehicleType:     "Vehicle type",
}

var labelsRu = labels{
	Title:       "Работники",
	Yes:         "Да",
	No:          "Нет",
	Placeholder: "—",
	Empty:       "Добавь первого работника",
	Delete:      "Удалить",
	ClearAll:    "Очистить всё",
	ConfirmAll:  "Удалить всё?",
	Cancel:      "Отмена",
	MissingKind: "Выберите класс (Слесарь или Водитель)",
	SaveFailed:  "Не удалось сохранить данные",
	Add:         "Добавить",
	Count:       "Всего",
	ChooseKind:  "— класс —",
	Kinds:       map[string]string{"Plumber": "Слесарь", "Driver": "Водитель"},
	Headers: []string{"Класс", "Имя", "Фамилия", "Возраст", "Дети", "Дата найма",
		"Разряд", "Специализация", "Ночная смена", "Категория прав", "Стаж", "Транспорт"},
	FirstName:       "Имя",
	LastName:        "Фамилия",
	Age:             "Возраст",
	HasKids:         "Есть дети",
	HireDate:        "Дата найма",
	Rank:            "Разряд",
	Specialty:       "Специализация",
	NightShift:      "Ночная смена",
	LicenseCategory: "Категория прав",
	ExperienceYears: "Стаж, лет",
	VehicleType:     "Тип транспорта",
}

func labelsFor(l enums.Lang) labels {
	if l == enums.LangRu {
		return labelsRu
	}
	return labelsEn
}
