package washer

import "github.com/m04kA/SMC-AvailabilityLedger/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
