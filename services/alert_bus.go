package services

import (
	"time"

	"gorm.io/gorm"

	"backend/models"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub) {
	_alert = alertDeps{db: db, rt: rt}
}

func EmitAlert(userID uint, typ, message string) { // safe to call anywhere
	if _alert.db == nil {
		return // not initialized
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastAlert(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
}
