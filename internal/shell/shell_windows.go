//go:build windows

package shell

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"golang.org/x/sys/windows"
)

func openWith(file, args string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	fileW, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return err
	}
	var argsW *uint16
	if args != "" {
		if argsW, err = windows.UTF16PtrFromString(args); err != nil {
			return err
		}
	}
	if err := windows.ShellExecute(0, verb, fileW, argsW, nil, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	return nil
}

// createShortcut создаёт .lnk через WScript.Shell.
func createShortcut(linkPath, target, args, description string) error {
	// COM привязан к потоку.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitialize(0); err != nil {
		return fmt.Errorf("CoInitialize: %w", err)
	}
	defer ole.CoUninitialize()

	shellObj, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("CreateObject(WScript.Shell): %w", err)
	}
	defer shellObj.Release()

	shellDisp, err := shellObj.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("QueryInterface IDispatch: %w", err)
	}
	defer shellDisp.Release()

	scV, err := oleutil.CallMethod(shellDisp, "CreateShortcut", linkPath)
	if err != nil {
		return fmt.Errorf("CreateShortcut: %w", err)
	}
	sc := scV.ToIDispatch()
	defer sc.Release()

	if _, err = oleutil.PutProperty(sc, "TargetPath", target); err != nil {
		return fmt.Errorf("set TargetPath: %w", err)
	}
	if strings.TrimSpace(args) != "" {
		if _, err = oleutil.PutProperty(sc, "Arguments", args); err != nil {
			return fmt.Errorf("set Arguments: %w", err)
		}
	}
	_, _ = oleutil.PutProperty(sc, "Description", description)
	_, _ = oleutil.PutProperty(sc, "IconLocation", target)

	if _, err = oleutil.CallMethod(sc, "Save"); err != nil {
		return fmt.Errorf("save shortcut: %w", err)
	}
	return nil
}
