package exam

// TaskCount is the number of task categories in the base-level EGE math exam.
const TaskCount = 21

// taskThemes maps task numbers 1-21 to their category descriptions.
// The wording matches the published exam specification and is embedded in
// generation prompts, so it must stay verbatim.
var taskThemes = map[int]string{
	1:  "Простейшие текстовые задачи (проценты, округление)",
	2:  "Единицы измерения (время, длина, масса, объём, площадь)",
	3:  "Графики и диаграммы",
	4:  "Преобразования выражений и формулы",
	5:  "Теория вероятностей",
	6:  "Оптимальный выбор (комплекты, варианты)",
	7:  "Анализ графиков функций",
	8:  "Анализ утверждений",
	9:  "Задачи на квадратной решетке (карта, фигуры)",
	10: "Прикладная геометрия (фигуры на плоскости)",
	11: "Стереометрия: многогранники, составные тела",
	12: "Планиметрия: треугольники, четырёхугольники, окружность",
	13: "Пространственные фигуры: параллелепипед, призма, цилиндр",
	14: "Вычисления с дробями и десятичными числами",
	15: "Округление и проценты в текстовых задачах",
	16: "Преобразования выражений: степени, логарифмы, тригонометрия",
	17: "Уравнения: линейные, квадратные, показательные",
	18: "Неравенства и числовые промежутки",
	19: "Числа и их свойства (цифровая запись)",
	20: "Сложные текстовые задачи: движение, смеси, работа",
	21: "Задачи на смекалку",
}

// TaskTheme returns the category description for a task number,
// or "" if the number is outside 1-21.
func TaskTheme(taskNumber int) string {
	return taskThemes[taskNumber]
}

// ValidTask reports whether taskNumber identifies a real task category.
func ValidTask(taskNumber int) bool {
	_, ok := taskThemes[taskNumber]
	return ok
}
