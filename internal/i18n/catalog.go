package i18n

var catalog = map[Locale]map[Key]string{
	Czech: {
		FieldRequired:    "Toto pole je povinné",
		InvalidEmail:     "Zadejte platnou e-mailovou adresu",
		InvalidPhone:     "Zadejte platné telefonní číslo",
		SubmitSuccess:    "Děkujeme! Ozveme se vám do 24 hodin.",
		SubmitNetwork:    "Nepodařilo se připojit k serveru. Zkuste to prosím znovu.",
		SubmitServer:     "Odeslání se nezdařilo. Zkuste to prosím později.",
		SubmitRejected:   "Zkontrolujte prosím vyplněné údaje.",
		SubmitDuplicate:  "Tuto poptávku jsme již obdrželi.",
		ExportFailed:     "Export CSV se nezdařil",
		NoSubmissions:    "Zatím žádné poptávky.",
		TotalSubmissions: "Celkem poptávek",
		SessionExpired:   "Přihlášení vypršelo, přihlaste se znovu.",
	},
	English: {
		FieldRequired:    "This field is required",
		InvalidEmail:     "Please enter a valid email address",
		InvalidPhone:     "Please enter a valid phone number",
		SubmitSuccess:    "Thank you! We will get back to you within 24 hours.",
		SubmitNetwork:    "Could not reach the server. Please try again.",
		SubmitServer:     "Sending failed. Please try again later.",
		SubmitRejected:   "Please check the details you entered.",
		SubmitDuplicate:  "We have already received this request.",
		ExportFailed:     "Failed to export CSV",
		NoSubmissions:    "No submissions yet.",
		TotalSubmissions: "Total submissions",
		SessionExpired:   "Your session expired, please log in again.",
	},
	Russian: {
		FieldRequired:    "Это поле обязательно",
		InvalidEmail:     "Введите корректный адрес электронной почты",
		InvalidPhone:     "Введите корректный номер телефона",
		SubmitSuccess:    "Спасибо! Мы свяжемся с вами в течение 24 часов.",
		SubmitNetwork:    "Не удалось подключиться к серверу. Попробуйте ещё раз.",
		SubmitServer:     "Не удалось отправить. Попробуйте позже.",
		SubmitRejected:   "Проверьте введённые данные.",
		SubmitDuplicate:  "Мы уже получили эту заявку.",
		ExportFailed:     "Не удалось экспортировать CSV",
		NoSubmissions:    "Заявок пока нет.",
		TotalSubmissions: "Всего заявок",
		SessionExpired:   "Сеанс истёк, войдите снова.",
	},
	Ukrainian: {
		FieldRequired:    "Це поле обов'язкове",
		InvalidEmail:     "Введіть дійсну адресу електронної пошти",
		InvalidPhone:     "Введіть дійсний номер телефону",
		SubmitSuccess:    "Дякуємо! Ми зв'яжемося з вами протягом 24 годин.",
		SubmitNetwork:    "Не вдалося з'єднатися з сервером. Спробуйте ще раз.",
		SubmitServer:     "Не вдалося надіслати. Спробуйте пізніше.",
		SubmitRejected:   "Перевірте введені дані.",
		SubmitDuplicate:  "Ми вже отримали цей запит.",
		ExportFailed:     "Не вдалося експортувати CSV",
		NoSubmissions:    "Заявок ще немає.",
		TotalSubmissions: "Усього заявок",
		SessionExpired:   "Сеанс завершився, увійдіть знову.",
	},
}
