package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/appinit"
	"gitee.com/czyczk/chain-auth-gateway/internal/background"
	"gitee.com/czyczk/chain-auth-gateway/internal/blockchain/chaincodectx"
	"gitee.com/czyczk/chain-auth-gateway/internal/blockchain/verifier/fabricverifier"
	"gitee.com/czyczk/chain-auth-gateway/internal/controller"
	"gitee.com/czyczk/chain-auth-gateway/internal/global"
	"gitee.com/czyczk/chain-auth-gateway/internal/meeting"
	"gitee.com/czyczk/chain-auth-gateway/internal/service"
	"gitee.com/czyczk/chain-auth-gateway/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	var configPath, sdkConfigPath string

	// Functions to be used by the cli helper
	serveFunc := getServeFunc(&configPath, &sdkConfigPath)

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Usage:   "Start as server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "conf",
						Aliases:     []string{"c"},
						Value:       "serve.yaml",
						EnvVars:     []string{"CAG_CONF"},
						Destination: &configPath,
					},
					&cli.StringFlag{
						Name:        "sdkconf",
						Aliases:     []string{"s"},
						Value:       "config-network.yaml",
						EnvVars:     []string{"CAG_SDK_CONF"},
						Destination: &sdkConfigPath,
					},
				},
				Action: serveFunc,
			},
		},
	}

	// Run the cli helper
	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func getServeFunc(configPath *string, sdkConfigPath *string) func(c *cli.Context) error {
	serveFunc := func(c *cli.Context) error {
		// Create a Fabric SDK instance
		err := appinit.SetupSDK(*sdkConfigPath)
		if err != nil {
			return err
		}

		defer global.SDKInstance.Close()

		// Load serve info from `serve.yaml`
		serverInfo, err := appinit.LoadServerInfo(*configPath)
		if err != nil {
			return err
		}

		global.ShowTimingLogs = serverInfo.ShowTimingLogs

		// Extract some info from the config for later use
		orgName := serverInfo.User.OrgName
		userID := serverInfo.User.UserID

		if serverInfo.Session == nil || serverInfo.Session.HMACSecret == "" {
			return fmt.Errorf("未指定会话令牌 HMAC 密钥。请在配置文件中指定 session.hmacSecret")
		}

		sessionTTL := 30 * time.Minute
		if serverInfo.Session.TTLMinutes > 0 {
			sessionTTL = time.Duration(serverInfo.Session.TTLMinutes) * time.Minute
		}

		// Create a channel client for the verification chaincode
		if err = appinit.InstantiateChannelClient(global.SDKInstance, serverInfo.Channel, orgName, userID); err != nil {
			return err
		}

		// Load the configured account public keys for the local challenge verification fast path
		accountKeys, err := appinit.LoadAccountKeys(serverInfo.AccountKeys)
		if err != nil {
			return err
		}

		// Instantiate the chain verifier
		chaincodeCtx := &chaincodectx.FabricChaincodeCtx{
			ChannelID:     serverInfo.Channel,
			OrgName:       orgName,
			Username:      userID,
			ChaincodeID:   serverInfo.ChaincodeID,
			ChannelClient: global.ChannelClientInstances[serverInfo.Channel][orgName][userID],
		}
		chainVerifier := fabricverifier.NewChainVerifierFabricImpl(chaincodeCtx, accountKeys)

		// Instantiate the session store
		var sessionStore store.SessionStore
		switch serverInfo.Session.Store {
		case "", "memory":
			sessionStore = store.NewMemorySessionStore()
		case "mysql":
			db, err := gorm.Open(mysql.Open(serverInfo.Session.MySQLDSN), &gorm.Config{})
			if err != nil {
				return errors.Wrap(err, "无法连接会话数据库")
			}
			sessionStore, err = store.NewGormSessionStore(db)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("未知的会话存储类型 '%v'", serverInfo.Session.Store)
		}

		// Instantiate the meeting provider if configured
		var meetingProvider meeting.IProvider
		if serverInfo.Meeting != nil && serverInfo.Meeting.BaseURL != "" {
			meetingProvider = meeting.NewProviderHTTPImpl(serverInfo.Meeting.BaseURL, serverInfo.Meeting.APIToken)
		}

		// Instantiate a proof verifier service
		proofVerifierSvc := &service.ProofVerifierService{
			ChainVerifier: chainVerifier,
			SessionStore:  sessionStore,
		}

		// Instantiate a session service
		sessionSvc := &service.SessionService{
			SessionStore:    sessionStore,
			MeetingProvider: meetingProvider,
			SessionTTL:      sessionTTL,
			TokenHMACKey:    []byte(serverInfo.Session.HMACSecret),
		}

		// Instantiate a job gate service
		jobGateSvc := &service.JobGateService{JobKeys: serverInfo.JobKeys}

		// Instantiate the authorization facade
		authSvc := &service.AuthService{
			ProofVerifier: proofVerifierSvc,
			SessionSvc:    sessionSvc,
			JobGate:       jobGateSvc,
		}

		// Instantiate an upload service
		serviceInfo := &service.Info{
			ChainVerifier: chainVerifier,
			SessionStore:  sessionStore,
			IPFSAPI:       serverInfo.IPFSAPI,
		}
		uploadSvc := &service.UploadService{
			ServiceInfo: serviceInfo,
			AuthSvc:     authSvc,
		}

		// Instantiate a meeting service
		meetingSvc := &service.MeetingService{
			Provider: meetingProvider,
			AuthSvc:  authSvc,
		}

		// Prepare the expired-session sweeper. It will be of use if enabled in the config.
		sweeperEnabled := serverInfo.Sweeper != nil && serverInfo.Sweeper.Enabled
		sweeperInterval := 10 * time.Minute
		if serverInfo.Sweeper != nil && serverInfo.Sweeper.IntervalMinutes > 0 {
			sweeperInterval = time.Duration(serverInfo.Sweeper.IntervalMinutes) * time.Minute
		}
		sweeper := background.NewSessionSweeper(sessionStore, sweeperInterval)
		if sweeperEnabled {
			if err := sweeper.Start(); err != nil {
				return err
			}
		}

		// Instantiate controllers
		// Instantiate a ping pong controller
		pingPongController := &controller.PingPongController{GroupName: "/"}

		// Instantiate an auth controller
		authController := &controller.AuthController{
			GroupName: "/",
			AuthSvc:   authSvc,
		}

		// Instantiate an upload controller
		uploadController := &controller.UploadController{
			GroupName: "/",
			UploadSvc: uploadSvc,
		}

		// Instantiate a meeting controller
		meetingController := &controller.MeetingController{
			GroupName:  "/",
			MeetingSvc: meetingSvc,
		}

		// Instantiate a job controller
		jobRunners := map[string]controller.JobRunner{
			"session-gc": func() (string, error) {
				evicted, err := sessionStore.EvictExpired(time.Now())
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("evicted %v expired sessions", evicted), nil
			},
		}
		if meetingProvider != nil {
			jobRunners["meeting-cleanup"] = func() (string, error) {
				cleared := 0
				for accountIdentity := range serverInfo.AccountKeys {
					if err := meetingProvider.ClearCookie(accountIdentity); err != nil {
						log.Warnf("无法清除账户 %v 的会议提供方 cookie: %v", accountIdentity, err)
						continue
					}
					cleared++
				}
				return fmt.Sprintf("cleared provider cookies for %v accounts", cleared), nil
			}
		}
		jobController := &controller.JobController{
			GroupName: "/job",
			AuthSvc:   authSvc,
			Runners:   jobRunners,
		}

		// Register controller handlers
		router := gin.Default()
		router.Use(controller.CORSMiddleware())
		apiv1Group := router.Group("/api/v1")
		controller.RegisterHandlers(apiv1Group, pingPongController)
		controller.RegisterHandlers(apiv1Group, authController)
		controller.RegisterHandlers(apiv1Group, uploadController)
		controller.RegisterHandlers(apiv1Group, meetingController)
		controller.RegisterHandlers(apiv1Group, jobController)

		// Start the HTTP server
		httpServer := &http.Server{
			Addr:    fmt.Sprintf(":%v", serverInfo.Port),
			Handler: router,
		}

		chanError := make(chan error)
		go func() {
			if err := httpServer.ListenAndServe(); err != nil {
				chanError <- errors.Wrap(err, "无法启动 HTTP 服务器")
			}
		}()

		// Listen Ctrl+C signals. On receiving a signal stops the app elegantly
		chanQuit := make(chan os.Signal, 1)
		signal.Notify(chanQuit, os.Interrupt)
		select {
		case err := <-chanError:
			return err
		case <-chanQuit:
			log.Infoln("收到 Ctrl+C 信号，正在退出程序...")

			// Stop the HTTP server elegantly
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Infoln("正在停止 HTTP 服务器...")
			if err := httpServer.Shutdown(ctx); err != nil {
				return errors.Wrap(err, "无法正常停止 HTTP 服务器")
			}

			// Stop the sweeper if enabled
			if sweeperEnabled {
				log.Infoln("正在停止会话清扫器...")
				wg, err := sweeper.Stop()
				if err != nil {
					return err
				}
				defer wg.Wait()
			}
		}

		return nil
	}

	return serveFunc
}
