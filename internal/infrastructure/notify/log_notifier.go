// Package notify entrega alertas de inventario a los canales configurados.
package notify

import (
	appinv "github.com/tu-usuario/comercio-pro/internal/application/inventory"
	"github.com/tu-usuario/comercio-pro/internal/domain/inventory"
	"github.com/tu-usuario/comercio-pro/pkg/logger"
)

var _ appinv.Notifier = (*LogNotifier)(nil)

// LogNotifier emite alertas al log estructurado. Canal por defecto cuando no hay
// integración externa (email, Slack) configurada.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// SendAlert registra la alerta con nivel según severidad.
func (n *LogNotifier) SendAlert(title, message, severity string, metadata map[string]any) {
	event := n.log.Info()
	switch severity {
	case inventory.SeverityCritical:
		event = n.log.Error()
	case inventory.SeverityHigh:
		event = n.log.Warn()
	}
	event.
		Str("title", title).
		Str("severity", severity).
		Fields(metadata).
		Msg(message)
}
