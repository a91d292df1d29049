package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sponsornet/backend/internal/middleware"
	"github.com/sponsornet/backend/pkg/prometheus"
	"github.com/sponsornet/backend/pkg/router"
	"github.com/sponsornet/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 30 * time.Second

func (s *srv) startApi(*cli.Context) error {
	s.loadService()
	defer s.close()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	httpSrv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)
		var err error
		if cfg.Cert != "" && cfg.Key != "" {
			err = httpSrv.ListenAndServeTLS(cfg.Cert, cfg.Key)
		} else {
			err = httpSrv.ListenAndServe()
		}

		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler())

	authVerifier := middleware.NewAuthVerifier().WithAccessToken()

	// Admin API.
	adminRouter := s.router.Branch()
	adminRouter.Before(authVerifier.Middleware())
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.GET(adminRouter, "/api/admin/process-daily-commissions", s.commissionDomain.GetStatistics)
		router.POST(adminRouter, "/api/admin/process-daily-commissions", s.commissionDomain.ProcessDailyCommissions)

		router.POST(adminRouter, "/api/admin/createNft", s.nftDomain.CreateNft)
		router.POST(adminRouter, "/api/admin/createMember", s.userDomain.CreateMember)
		router.POST(adminRouter, "/api/admin/payHoldingWallet", s.nftDomain.PayHoldingWallet)

		router.GET(adminRouter, "/api/admin/getWithdrawals", s.withdrawalDomain.GetList)
		router.POST(adminRouter, "/api/admin/processWithdrawal", s.withdrawalDomain.Process)
		router.POST(adminRouter, "/api/admin/completeWithdrawal", s.withdrawalDomain.Complete)
		router.POST(adminRouter, "/api/admin/rejectWithdrawal", s.withdrawalDomain.Reject)
	}

	// Member API.
	memberRouter := s.router.Branch()
	memberRouter.Before(authVerifier.Middleware())
	{
		router.POST(memberRouter, "/api/purchaseNft", s.nftDomain.PurchaseNft)
		router.GET(memberRouter, "/api/getMyPurchases", s.nftDomain.GetMyPurchases)
		router.GET(memberRouter, "/api/getDashboard", s.userDomain.GetDashboard)
		router.GET(memberRouter, "/api/getMyCommissions", s.commissionDomain.GetMyCommissions)
		router.GET(memberRouter, "/api/getMyWithdrawals", s.withdrawalDomain.GetMy)
		router.POST(memberRouter, "/api/createWithdrawal", s.withdrawalDomain.Create)
		router.POST(memberRouter, "/api/cancelWithdrawal", s.withdrawalDomain.Cancel)
	}

	// Public API.
	router.GET(s.router, "/api/getNfts", s.nftDomain.GetNfts)
}
