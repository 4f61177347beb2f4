package poseio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"posekit/internal/pose"
)

// NPY container constants. Version 1 headers carry a 16-bit length, version 2
// a 32-bit length; both pad the header dict with spaces to a 64-byte multiple.
var npyMagic = []byte("\x93NUMPY")

type npyHeader struct {
	descr        string
	fortranOrder bool
	shape        []int
}

// loadNPY reads a packed NumPy array file holding a (frames, keypoints, 3)
// float array in C order. Little-endian float64 and float32 payloads are
// accepted; everything else is rejected with a descriptive error.
func loadNPY(path string) (*pose.Tensor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open npy file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	header, err := readNPYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if header.fortranOrder {
		return nil, fmt.Errorf("%s: fortran-order arrays are not supported", path)
	}
	if len(header.shape) != 3 || header.shape[2] != pose.Coords {
		return nil, fmt.Errorf("%s: expected shape (frames, keypoints, 3), got %v", path, header.shape)
	}

	frames, keypoints := header.shape[0], header.shape[1]
	if frames <= 0 || keypoints <= 0 {
		return nil, fmt.Errorf("%s: non-positive dimension in shape %v", path, header.shape)
	}

	var elemSize int64
	switch header.descr {
	case "<f8":
		elemSize = 8
	case "<f4":
		elemSize = 4
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %q (want <f8 or <f4)", path, header.descr)
	}

	// The declared element count must fit the file before anything is
	// allocated for it. Division keeps the comparison overflow-free.
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat npy file: %w", err)
	}
	if int64(frames) > info.Size()/elemSize/pose.Coords/int64(keypoints) {
		return nil, fmt.Errorf("%s: shape %v declares more data than the %d-byte file holds", path, header.shape, info.Size())
	}

	t := pose.NewTensor(frames, keypoints)

	buf := make([]byte, elemSize)
	for i := range t.Data {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%s: truncated payload at element %d: %w", path, i, err)
		}
		if elemSize == 8 {
			t.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
		} else {
			t.Data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
		}
	}

	return t, nil
}

func readNPYHeader(r io.Reader) (npyHeader, error) {
	var zero npyHeader

	magic := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(r, magic); err != nil {
		return zero, fmt.Errorf("read npy magic: %w", err)
	}
	if string(magic[:len(npyMagic)]) != string(npyMagic) {
		return zero, fmt.Errorf("not an npy file")
	}
	major := magic[len(npyMagic)]

	var headerLen int
	switch major {
	case 1:
		var l uint16
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return zero, fmt.Errorf("read npy header length: %w", err)
		}
		headerLen = int(l)
	case 2, 3:
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return zero, fmt.Errorf("read npy header length: %w", err)
		}
		headerLen = int(l)
	default:
		return zero, fmt.Errorf("unsupported npy version %d", major)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return zero, fmt.Errorf("read npy header: %w", err)
	}
	return parseNPYDict(string(raw))
}

// parseNPYDict extracts descr, fortran_order, and shape from the header's
// python dict literal.
func parseNPYDict(dict string) (npyHeader, error) {
	var h npyHeader

	descr, err := dictValue(dict, "descr")
	if err != nil {
		return h, err
	}
	h.descr = strings.Trim(descr, "'\"")

	order, err := dictValue(dict, "fortran_order")
	if err != nil {
		return h, err
	}
	switch order {
	case "True":
		h.fortranOrder = true
	case "False":
		h.fortranOrder = false
	default:
		return h, fmt.Errorf("bad fortran_order value %q", order)
	}

	shapeRaw, err := dictValue(dict, "shape")
	if err != nil {
		return h, err
	}
	shapeRaw = strings.Trim(shapeRaw, "()")
	for _, part := range strings.Split(shapeRaw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, err := strconv.Atoi(part)
		if err != nil {
			return h, fmt.Errorf("bad shape dimension %q", part)
		}
		h.shape = append(h.shape, dim)
	}
	return h, nil
}

// dictValue pulls the value following 'key': out of a flat python dict
// literal, stopping at the comma that ends the entry. Tuple values keep
// their parentheses.
func dictValue(dict, key string) (string, error) {
	marker := "'" + key + "':"
	start := strings.Index(dict, marker)
	if start < 0 {
		return "", fmt.Errorf("npy header missing %q", key)
	}
	rest := strings.TrimLeft(dict[start+len(marker):], " ")

	if strings.HasPrefix(rest, "(") {
		end := strings.Index(rest, ")")
		if end < 0 {
			return "", fmt.Errorf("npy header has unterminated tuple for %q", key)
		}
		return rest[:end+1], nil
	}
	end := strings.IndexAny(rest, ",}")
	if end < 0 {
		end = len(rest)
	}
	return strings.TrimSpace(rest[:end]), nil
}

// WriteNPY writes a tensor as a version-1 NPY file with a little-endian
// float64 payload, the inverse of the built-in NPY loader.
func WriteNPY(path string, t *pose.Tensor) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create npy file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	dict := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%d, %d, %d), }",
		t.Frames, t.Keypoints, pose.Coords)
	// Pad so magic + version + length prefix + dict + newline lands on a
	// 64-byte boundary.
	total := len(npyMagic) + 2 + 2 + len(dict) + 1
	if pad := 64 - total%64; pad != 64 {
		dict += strings.Repeat(" ", pad)
	}
	dict += "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(dict))); err != nil {
		return err
	}
	if _, err := w.WriteString(dict); err != nil {
		return err
	}

	buf := make([]byte, 8)
	for _, v := range t.Data {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write npy payload: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close npy file: %w", err)
	}
	return nil
}
