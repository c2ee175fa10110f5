package document

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FromYAML converts a YAML document to JSON.  Mapping keys keep their
// document order so version and skill ordering survive the conversion.
func FromYAML(data []byte) (doc Raw, err error) {
	var root yaml.Node
	err = yaml.Unmarshal(data, &root)
	if err != nil {
		err = errors.Wrap(err, "failed to parse YAML")
		return doc, err
	}

	var buf bytes.Buffer
	if len(root.Content) == 0 {
		buf.WriteString("null")
		doc = Raw(buf.Bytes())
		return doc, err
	}

	err = writeNode(&buf, root.Content[0])
	if err != nil {
		return doc, err
	}

	doc = Raw(buf.Bytes())
	return doc, err
}

func writeNode(buf *bytes.Buffer, node *yaml.Node) (err error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return err
		}
		err = writeNode(buf, node.Content[0])
	case yaml.AliasNode:
		err = writeNode(buf, node.Alias)
	case yaml.MappingNode:
		err = writeMapping(buf, node)
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			err = writeNode(buf, child)
			if err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		err = writeScalar(buf, node)
	default:
		err = errors.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
	return err
}

func writeMapping(buf *bytes.Buffer, node *yaml.Node) (err error) {
	buf.WriteByte('{')
	for i := 0; i+1 < len(node.Content); i += 2 {
		if i > 0 {
			buf.WriteByte(',')
		}
		var key []byte
		key, err = json.Marshal(node.Content[i].Value)
		if err != nil {
			err = errors.Wrapf(err, "failed to encode key at line %d", node.Content[i].Line)
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		err = writeNode(buf, node.Content[i+1])
		if err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return err
}

func writeScalar(buf *bytes.Buffer, node *yaml.Node) (err error) {
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		var b bool
		err = node.Decode(&b)
		if err != nil {
			err = errors.Wrapf(err, "invalid boolean at line %d", node.Line)
			return err
		}
		buf.WriteString(strconv.FormatBool(b))
	case "!!int":
		var n int64
		err = node.Decode(&n)
		if err != nil {
			err = errors.Wrapf(err, "invalid integer at line %d", node.Line)
			return err
		}
		buf.WriteString(strconv.FormatInt(n, 10))
	case "!!float":
		var f float64
		err = node.Decode(&f)
		if err != nil {
			err = errors.Wrapf(err, "invalid number at line %d", node.Line)
			return err
		}
		var encoded []byte
		encoded, err = json.Marshal(f)
		if err != nil {
			err = errors.Wrapf(err, "unencodable number at line %d", node.Line)
			return err
		}
		buf.Write(encoded)
	default:
		var encoded []byte
		encoded, err = json.Marshal(node.Value)
		if err != nil {
			err = errors.Wrapf(err, "failed to encode scalar at line %d", node.Line)
			return err
		}
		buf.Write(encoded)
	}
	return err
}
