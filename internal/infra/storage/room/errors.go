package room

import "errors"

var (
	// ErrRoomNotFound возвращается, когда юнит не найден
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrVersionConflict возвращается, когда юнит изменили параллельно
	ErrVersionConflict = errors.New("room.repository: version conflict")

	// ErrDuplicateNumber возвращается при повторном номере юнита
	ErrDuplicateNumber = errors.New("room.repository: duplicate room number")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("room.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("room.repository: failed to scan row")
)
