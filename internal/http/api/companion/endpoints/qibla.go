package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api/companion/packets"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/qibla"
)

type QiblaController struct {
	devices *qibla.Registry
}

func newQiblaController(devices *qibla.Registry) *QiblaController {
	return &QiblaController{devices: devices}
}

// QiblaModule mounts the bearing endpoint and per-device heading tracking
func QiblaModule(devices *qibla.Registry) api.Module {
	ctl := newQiblaController(devices)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/qibla", ctl.bearing)
		c.PUBLIC_POST("/qibla/devices/:id", ctl.startDevice)
		c.PUBLIC_GET("/qibla/devices/:id", ctl.getDevice)
		c.PUBLIC_PUT("/qibla/devices/:id/location", ctl.relocateDevice)
		c.PUBLIC_POST("/qibla/devices/:id/samples", ctl.pushSample)
		c.PUBLIC_DELETE("/qibla/devices/:id", ctl.stopDevice)
	})
}

func bindDeviceLocation(ctx *gin.Context) (model.GeoPoint, *api.APIError) {
	var request packets.DeviceLocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return model.GeoPoint{}, api.NewError(http.StatusBadRequest, err.Error())
	}
	return model.GeoPoint{Latitude: *request.Latitude, Longitude: *request.Longitude}, nil
}

func deviceError(err error) *api.APIError {
	if errors.Is(err, qibla.ErrUnknownDevice) {
		return api.NewError(http.StatusNotFound, "device is not being tracked")
	}
	return api.NewError(http.StatusInternalServerError, err.Error())
}

// GET /api/qibla?lat=..&lng=..
func (q *QiblaController) bearing(ctx *gin.Context) (any, *api.APIError) {
	point, apiErr := bindLocation(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.QiblaResponse{Origin: point, Bearing: qibla.QiblaFrom(point)}, nil
}

// POST /api/qibla/devices/:id
func (q *QiblaController) startDevice(ctx *gin.Context) (any, *api.APIError) {
	point, apiErr := bindDeviceLocation(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return q.devices.Start(ctx.Request.Context(), ctx.Param("id"), point), nil
}

// GET /api/qibla/devices/:id
func (q *QiblaController) getDevice(ctx *gin.Context) (any, *api.APIError) {
	snap, err := q.devices.Get(ctx.Param("id"))
	if err != nil {
		return nil, deviceError(err)
	}
	return snap, nil
}

// PUT /api/qibla/devices/:id/location
func (q *QiblaController) relocateDevice(ctx *gin.Context) (any, *api.APIError) {
	point, apiErr := bindDeviceLocation(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	snap, err := q.devices.Relocate(ctx.Param("id"), point)
	if err != nil {
		return nil, deviceError(err)
	}
	return snap, nil
}

// POST /api/qibla/devices/:id/samples
func (q *QiblaController) pushSample(ctx *gin.Context) (any, *api.APIError) {
	var request packets.OrientationSampleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	snap, err := q.devices.Push(ctx.Param("id"), model.RawOrientation{
		CompassHeading: request.CompassHeading,
		Alpha:          request.Alpha,
	})
	if err != nil {
		return nil, deviceError(err)
	}
	return snap, nil
}

// DELETE /api/qibla/devices/:id
func (q *QiblaController) stopDevice(ctx *gin.Context) (any, *api.APIError) {
	if err := q.devices.Stop(ctx.Param("id")); err != nil {
		return nil, deviceError(err)
	}
	return gin.H{"stopped": true}, nil
}
