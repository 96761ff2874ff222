package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrTaskNotFound       = errors.New("задача не найдена")
	ErrCommentNotFound    = errors.New("комментарий не найден")
	ErrShareNotFound      = errors.New("пользователь не найден в списке доступа")
	ErrInvalidCredentials = errors.New("неверные учетные данные")
	ErrUserAlreadyExists  = errors.New("пользователь уже существует")
	ErrInvalidInput       = errors.New("некорректные входные данные")
	ErrDatabaseConnection = errors.New("ошибка соединения с базой данных")
	ErrValidationFailed   = errors.New("ошибка валидации")
	ErrUnauthorized       = errors.New("нет доступа")
	ErrInternalServer     = errors.New("внутренняя ошибка сервера")
	ErrBadRequest         = errors.New("неверный запрос")
	ErrNotFound           = errors.New("ресурс не найден")
	ErrConflict           = errors.New("конфликт ресурса")

	ErrInvalidUsername    = errors.New("некорректное имя пользователя")
	ErrInvalidEmail       = errors.New("некорректный email")
	ErrInvalidPassword    = errors.New("некорректный пароль")
	ErrInvalidStatus      = errors.New("недопустимый статус задачи")
	ErrInvalidPriority    = errors.New("недопустимый приоритет задачи")
	ErrInvalidTitle       = errors.New("некорректный заголовок задачи")
	ErrInvalidDescription = errors.New("некорректное описание задачи")
	ErrInvalidDeadline    = errors.New("некорректный срок задачи")
	ErrInvalidPermission  = errors.New("некорректное право доступа")
	ErrInvalidComment     = errors.New("контент и автор комментария обязательны")
	ErrNoFileUploaded     = errors.New("файл не загружен")

	ErrInvalidGzipRequest    = errors.New("некорректное gzip-тело запроса")
	ErrGzipCompressionFailed = errors.New("ошибка gzip-сжатия ответа")
	ErrConfigFileReadFailed  = errors.New("не удалось прочитать файл конфигурации")
	ErrConfigParseFailed     = errors.New("не удалось разобрать файл конфигурации")
	ErrConfigInvalidFormat   = errors.New("некорректное значение конфигурации")
)
