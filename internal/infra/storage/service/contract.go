package service

import "github.com/agroboost/AgroBoost-RentalService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
