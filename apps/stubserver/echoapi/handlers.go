package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway/inmem"
)

func registerAPI(g *echo.Group, opts *Options) {
	api := storeAPI{store: opts.Store}
	auth := requireAuth(opts)

	g.GET("/publicaciones", api.feed, auth)
	g.POST("/publicaciones", api.createPost, auth)
	g.PUT("/publicaciones/:id", api.updatePost, auth)
	g.DELETE("/publicaciones/:id", api.deletePost, auth)
	g.POST("/reacciones", api.createReaction, auth)
	g.GET("/comentarios/publicacion/:id", api.comments, auth)
	g.POST("/comentarios", api.createComment, auth)
	g.POST("/upload/files", api.uploadFiles, auth)

	g.GET("/amigos/lista", api.friends, auth)
	g.GET("/amigos/solicitudes", api.friendRequests, auth)
	g.POST("/amigos/solicitud", api.sendFriendRequest, auth)
	g.PUT("/amigos/:id", api.respondFriendRequest, auth)

	g.GET("/materias", api.subjects, auth)
	g.POST("/materias", api.createSubject, auth)
	g.PUT("/materias/:id", api.updateSubject, auth)
	g.DELETE("/materias/:id", api.deleteSubject, auth)
	g.GET("/horarios", api.schedules, auth)
	g.GET("/horarios/grupo/:id", api.schedulesByGroup, auth)
	g.GET("/horarios/estudiante/:ci", api.scheduleByStudent, auth)
	g.POST("/horarios", api.createSchedule, auth)
	g.DELETE("/horarios/:id", api.deleteSchedule, auth)
	g.GET("/notas/estudiante/:ci", api.gradesByStudent, auth)
	g.POST("/notas", api.createGrade, auth)
	g.PUT("/notas/:id", api.updateGrade, auth)
	g.DELETE("/notas/:id", api.deleteGrade, auth)
	g.GET("/estudiantes", api.students, auth)
	g.GET("/estudiantes/:ci/materias", api.studentSubjects, auth)
	g.PUT("/estudiantes/:ci", api.setStudentGroup, auth)
	g.POST("/estudiantes/materias", api.assignSubject, auth)
	g.GET("/docentes", api.teachers, auth)
	g.GET("/grupos", api.groups, auth)
	g.POST("/grupos", api.createGroup, auth)

	g.GET("/mensajes/conversaciones", api.conversations, auth)
	g.POST("/mensajes/conversaciones", api.createConversation, auth)
	g.GET("/mensajes/conversaciones/:id", api.conversationInfo, auth)
	g.GET("/mensajes/conversacion/:id", api.messages, auth)
	g.POST("/mensajes", api.sendMessage, auth)
	g.PUT("/mensajes/:id/leer", api.markMessageRead, auth)
	g.GET("/usuarios/search/query", api.searchUsers, auth)

	g.GET("/rutas-carpooling", api.rides, auth)
	g.GET("/rutas-carpooling/mis-rutas", api.myRides, auth)
	g.POST("/rutas-carpooling", api.createRide, auth)
	g.PUT("/rutas-carpooling/:id", api.updateRide, auth)
	g.DELETE("/rutas-carpooling/:id", api.deleteRide, auth)
	g.POST("/pasajeros", api.requestJoin, auth)
	g.PUT("/pasajeros/:id", api.setJoinState, auth)
	g.DELETE("/pasajeros/:id", api.cancelJoin, auth)

	g.GET("/notificaciones", api.notifications, auth)
	g.GET("/notificaciones/no-leidas", api.unreadNotifications, auth)
	g.PUT("/notificaciones/:id/leer", api.markNotificationRead, auth)
	g.PUT("/notificaciones/leer-todas", api.markAllNotificationsRead, auth)
	g.DELETE("/notificaciones/:id", api.deleteNotification, auth)
}

type storeAPI struct {
	store *inmem.Store
}

func pagination(ctx echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(ctx.QueryParam("skip"))
	limit, _ = strconv.Atoi(ctx.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}
	return skip, limit
}

// --- social ---

func (api storeAPI) feed(ctx echo.Context) error {
	skip, limit := pagination(ctx)
	posts, err := api.store.Feed(ctx.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api storeAPI) createPost(ctx echo.Context) error {
	var data social.CreatePost
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	post, err := api.store.CreatePost(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, post)
}

func (api storeAPI) updatePost(ctx echo.Context) error {
	var data social.UpdatePost
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	post, err := api.store.UpdatePost(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, post)
}

func (api storeAPI) deletePost(ctx echo.Context) error {
	if err := api.store.DeletePost(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) createReaction(ctx echo.Context) error {
	var data struct {
		PostID string `json:"id_publicacion"`
		Kind   string `json:"tipo_reac"`
	}
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	r, err := api.store.CreateReaction(ctx.Request().Context(), data.PostID, data.Kind)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api storeAPI) comments(ctx echo.Context) error {
	comments, err := api.store.Comments(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, comments)
}

func (api storeAPI) createComment(ctx echo.Context) error {
	var data struct {
		PostID  string `json:"id_publicacion"`
		Content string `json:"contenido"`
	}
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	cm, err := api.store.CreateComment(ctx.Request().Context(), data.PostID, data.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cm)
}

func (api storeAPI) uploadFiles(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formulario inválido")
	}
	var uploads []social.Upload
	for _, fh := range form.File["files"] {
		uploads = append(uploads, social.Upload{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type")})
	}
	urls, err := api.store.UploadFiles(ctx.Request().Context(), uploads)
	if err != nil {
		return err
	}
	files := make([]echo.Map, 0, len(urls))
	for _, u := range urls {
		files = append(files, echo.Map{"url": u})
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"files": files})
}

func (api storeAPI) friends(ctx echo.Context) error {
	friends, err := api.store.Friends(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, friends)
}

func (api storeAPI) friendRequests(ctx echo.Context) error {
	reqs, err := api.store.FriendRequests(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reqs)
}

func (api storeAPI) sendFriendRequest(ctx echo.Context) error {
	userID := ctx.QueryParam("id_usuario_destino")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id_usuario_destino requerido")
	}
	req, err := api.store.SendFriendRequest(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, req)
}

func (api storeAPI) respondFriendRequest(ctx echo.Context) error {
	var data struct {
		Status string `json:"estado"`
	}
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	if err := api.store.RespondFriendRequest(ctx.Request().Context(), ctx.Param("id"), data.Status); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// --- academic ---

func (api storeAPI) subjects(ctx echo.Context) error {
	subjects, err := api.store.Subjects(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api storeAPI) createSubject(ctx echo.Context) error {
	var data academic.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	subj, err := api.store.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, subj)
}

func (api storeAPI) updateSubject(ctx echo.Context) error {
	var data academic.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	subj, err := api.store.UpdateSubject(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subj)
}

func (api storeAPI) deleteSubject(ctx echo.Context) error {
	if err := api.store.DeleteSubject(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) schedules(ctx echo.Context) error {
	slots, err := api.store.Schedules(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, slots)
}

func (api storeAPI) schedulesByGroup(ctx echo.Context) error {
	slots, err := api.store.SchedulesByGroup(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, slots)
}

func (api storeAPI) scheduleByStudent(ctx echo.Context) error {
	slots, err := api.store.MySchedule(ctx.Request().Context(), ctx.Param("ci"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, slots)
}

func (api storeAPI) createSchedule(ctx echo.Context) error {
	var data academic.NewSchedule
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	slot, err := api.store.CreateSchedule(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, slot)
}

func (api storeAPI) deleteSchedule(ctx echo.Context) error {
	if err := api.store.DeleteSchedule(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) gradesByStudent(ctx echo.Context) error {
	grades, err := api.store.GradesByStudent(ctx.Request().Context(), ctx.Param("ci"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api storeAPI) createGrade(ctx echo.Context) error {
	var data academic.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	g, err := api.store.CreateGrade(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api storeAPI) updateGrade(ctx echo.Context) error {
	var data academic.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	g, err := api.store.UpdateGrade(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api storeAPI) deleteGrade(ctx echo.Context) error {
	if err := api.store.DeleteGrade(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) students(ctx echo.Context) error {
	students, err := api.store.Students(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api storeAPI) studentSubjects(ctx echo.Context) error {
	subjects, err := api.store.MySubjects(ctx.Request().Context(), ctx.Param("ci"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api storeAPI) setStudentGroup(ctx echo.Context) error {
	var data struct {
		GroupID string `json:"id_grupo"`
	}
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	if err := api.store.SetStudentGroup(ctx.Request().Context(), ctx.Param("ci"), data.GroupID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) assignSubject(ctx echo.Context) error {
	var data academic.Assignment
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	if err := api.store.AssignSubject(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api storeAPI) teachers(ctx echo.Context) error {
	teachers, err := api.store.Teachers(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api storeAPI) groups(ctx echo.Context) error {
	groups, err := api.store.Groups(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api storeAPI) createGroup(ctx echo.Context) error {
	var data academic.NewGroup
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	g, err := api.store.CreateGroup(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, g)
}

// --- messaging ---

func (api storeAPI) conversations(ctx echo.Context) error {
	convs, err := api.store.Conversations(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, convs)
}

func (api storeAPI) createConversation(ctx echo.Context) error {
	var data messaging.CreateConversation
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	conv, err := api.store.CreateConversation(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, conv)
}

func (api storeAPI) conversationInfo(ctx echo.Context) error {
	conv, err := api.store.ConversationInfo(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, conv)
}

func (api storeAPI) messages(ctx echo.Context) error {
	msgs, err := api.store.Messages(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api storeAPI) sendMessage(ctx echo.Context) error {
	var data messaging.SendMessage
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	msg, err := api.store.Send(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api storeAPI) markMessageRead(ctx echo.Context) error {
	if err := api.store.MarkRead(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) searchUsers(ctx echo.Context) error {
	users, err := api.store.SearchUsers(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

// --- carpooling ---

func (api storeAPI) rides(ctx echo.Context) error {
	skip, limit := pagination(ctx)
	rides, err := api.store.Rides(ctx.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rides)
}

func (api storeAPI) myRides(ctx echo.Context) error {
	mine, err := api.store.MyRides(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mine)
}

func (api storeAPI) createRide(ctx echo.Context) error {
	var data carpool.NewRide
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	r, err := api.store.CreateRide(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api storeAPI) updateRide(ctx echo.Context) error {
	var data carpool.NewRide
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	r, err := api.store.UpdateRide(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api storeAPI) deleteRide(ctx echo.Context) error {
	if err := api.store.DeleteRide(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) requestJoin(ctx echo.Context) error {
	var data carpool.NewJoinRequest
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	j, err := api.store.RequestJoin(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, j)
}

func (api storeAPI) setJoinState(ctx echo.Context) error {
	var data struct {
		State string `json:"estado"`
	}
	if err := ctx.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo inválido")
	}
	if err := api.store.SetJoinState(ctx.Request().Context(), ctx.Param("id"), data.State); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) cancelJoin(ctx echo.Context) error {
	if err := api.store.CancelJoin(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// --- notifications ---

func (api storeAPI) notifications(ctx echo.Context) error {
	skip, limit := pagination(ctx)
	items, err := api.store.Notifications(ctx.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api storeAPI) unreadNotifications(ctx echo.Context) error {
	n, err := api.store.UnreadCount(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"no_leidas": n})
}

func (api storeAPI) markNotificationRead(ctx echo.Context) error {
	if err := api.store.MarkNotificationRead(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) markAllNotificationsRead(ctx echo.Context) error {
	if err := api.store.MarkAllRead(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api storeAPI) deleteNotification(ctx echo.Context) error {
	if err := api.store.DeleteNotification(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
