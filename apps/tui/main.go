package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/inspect"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/notify"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway"
	geosvc "github.com/karciss/Frontend-Proyecto-Red-Social-sub001/services/geo"
	logsvc "github.com/karciss/Frontend-Proyecto-Red-Social-sub001/services/logger"
)

func main() {
	conf := core.LoadConfig()

	logFile, err := os.OpenFile("tui.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	errAndDie(err)
	defer logFile.Close()
	std := log.New(logFile, "TUI : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	client := gateway.NewClient(conf, logger)

	username, password, err := promptCredentials()
	errAndDie(err)

	sess, err := session.Login(context.Background(), client, conf, username, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "login failed:", core.DisplayError(err, "could not sign in"))
		os.Exit(1)
	}

	bus := core.NewBroadcast()

	feed := social.NewFeed(client, sess, conf, logger, core.Validate)
	msgs := messaging.NewController(client, sess, conf, logger, bus)
	rides := carpool.NewController(
		client,
		geosvc.NewNominatimGeocoder(conf),
		geosvc.NewOSRMRouter(conf),
		sess, conf, logger, core.Validate, bus,
	)
	alerts := notify.NewController(client, sess, conf, logger, bus)
	detail := inspect.NewDetail(client, client, sess, conf, logger)
	detail.OnCommentAdded = feed.OnCommentAdded

	app := newApp(conf, sess, feed, msgs, rides, alerts, detail)

	if sess.User().IsAdmin() {
		panel, err := academic.NewAdminPanel(client, sess, conf, logger, core.Validate)
		errAndDie(err)
		app.admin = panel
	} else if sess.User().IsStudent() {
		panel, err := academic.NewStudentPanel(client, sess, conf, logger)
		errAndDie(err)
		app.student = panel
	}

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		errAndDie(err)
	}
}

// promptCredentials reads the username from stdin and the password with
// terminal echo disabled.
func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("correo: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	fmt.Print("contraseña: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(username), string(raw), nil
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
