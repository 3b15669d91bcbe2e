package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"dinehall/events"
	"dinehall/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler upgrades a staff dashboard connection and registers it for
// the caller's restaurant. The connection is held open until the client
// goes away; broadcasts are pushed from the lifecycle controllers.
func EventsHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rid := restaurantID(c)
	events.RegisterClient(conn, rid)
	utils.InfoLogger.Printf("Events client connected (restaurant=%s)", rid)

	go func() {
		defer events.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
