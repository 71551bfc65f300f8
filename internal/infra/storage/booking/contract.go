package booking

import "github.com/agroboost/AgroBoost-RentalService/pkg/dbmetrics"

// DBExecutor is shared with dbmetrics so both *sql.DB and *dbmetrics.DB fit
type DBExecutor = dbmetrics.DBExecutor
