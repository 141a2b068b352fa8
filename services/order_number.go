package services

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber = yyyyMMddHHmmss + millis (3) + random (4)
// ชนกันได้ในทางทฤษฎี unique index กับ retry ใน Submit เป็นตัวกันจริง
func NewOrderNumber(now time.Time) string {
	u := uuid.New()
	suffix := binary.BigEndian.Uint32(u[:4]) % 10000
	return fmt.Sprintf("%s%03d%04d", now.Format("20060102150405"), now.Nanosecond()/int(time.Millisecond), suffix)
}
