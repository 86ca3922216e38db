package uinput

import (
	"errors"
	"os"
	"syscall"
	"unsafe"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift)
}

var intSize = unsafe.Sizeof(int32(0))

var (
	uiDevCreate  = ioc(iocNone, 'U', 1, 0)
	uiDevDestroy = ioc(iocNone, 'U', 2, 0)

	uiSetEvBit  = ioc(iocWrite, 'U', 100, intSize)
	uiSetKeyBit = ioc(iocWrite, 'U', 101, intSize)
	uiSetRelBit = ioc(iocWrite, 'U', 102, intSize)
	uiSetAbsBit = ioc(iocWrite, 'U', 103, intSize)
	uiSetFFBit  = ioc(iocWrite, 'U', 107, intSize)

	uiBeginFFUpload = ioc(iocRead|iocWrite, 'U', 200, uploadSize)
	uiEndFFUpload   = ioc(iocWrite, 'U', 201, uploadSize)
	uiBeginFFErase  = ioc(iocRead|iocWrite, 'U', 202, eraseSize)
	uiEndFFErase    = ioc(iocWrite, 'U', 203, eraseSize)

	eviocRmFF = ioc(iocWrite, 'E', 0x81, intSize)
)

// control runs f with the raw descriptor without switching the file to
// blocking mode, which os.File.Fd would do.
func control(f *os.File, fn func(fd uintptr) error) error {
	conn, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var ferr error
	err = conn.Control(func(fd uintptr) { ferr = fn(fd) })
	return multierr.Append(err, ferr)
}

func ioctlValue(f *os.File, req uintptr, value uintptr) error {
	return control(f, func(fd uintptr) error {
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, value); errno != 0 {
			return errno
		}
		return nil
	})
}

func ioctlPointer(f *os.File, req uintptr, arg unsafe.Pointer) error {
	return control(f, func(fd uintptr) error {
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg)); errno != 0 {
			return errno
		}
		return nil
	})
}

func isClosed(err error) bool {
	return errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EBADF)
}
