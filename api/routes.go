package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carteira-app/finance-server/internal/cache"
	"github.com/carteira-app/finance-server/internal/handlers/v1/card"
	"github.com/carteira-app/finance-server/internal/handlers/v1/limit"
	"github.com/carteira-app/finance-server/internal/handlers/v1/report"
	"github.com/carteira-app/finance-server/internal/handlers/v1/status"
	"github.com/carteira-app/finance-server/internal/handlers/v1/subscription"
	"github.com/carteira-app/finance-server/internal/handlers/v1/task"
	"github.com/carteira-app/finance-server/internal/handlers/v1/transaction"
	"github.com/carteira-app/finance-server/internal/handlers/v1/user"
	"github.com/carteira-app/finance-server/internal/logging"
	"github.com/carteira-app/finance-server/internal/operator"
	"github.com/carteira-app/finance-server/internal/reports"
	"github.com/carteira-app/finance-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
	Cache    cache.Cache
	Pipeline *reports.Pipeline
	Tasks    *reports.TaskStore
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()
	humaAPI := humago.New(mux, huma.DefaultConfig("finance-server", "1.0.0"))
	humaAPI.UseMiddleware(logging.Middleware(r.Logger))

	handlers := []interface{ Register(huma.API) }{
		status.NewHandler(),
		user.NewUpsertUserHandler(r.Operator, r.Cache),
		user.NewUserExistsHandler(r.Service.Client, r.Cache),
		user.NewUserInfoHandler(r.Service.Client),
		transaction.NewCreateTransactionHandler(r.Operator),
		transaction.NewGetTransactionHandler(r.Service.Client, r.Service.Transaction),
		transaction.NewUpdateTransactionHandler(r.Operator),
		transaction.NewDeleteTransactionHandler(r.Operator),
		limit.NewCreateLimitHandler(r.Operator),
		limit.NewCheckLimitHandler(r.Service.Client, r.Service.Limit),
		limit.NewCheckAllLimitsHandler(r.Service.Client, r.Service.Limit),
		card.NewCreateCardHandler(r.Operator),
		card.NewListCardsHandler(r.Service.Client, r.Service.Card),
		subscription.NewGrantSubscriptionHandler(r.Operator),
		subscription.NewRevokeSubscriptionHandler(r.Operator),
		report.NewGenerateReportHandler(r.Pipeline, r.Tasks),
		task.NewGetTaskHandler(r.Tasks),
	}
	for _, handler := range handlers {
		handler.Register(humaAPI)
	}

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
