package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"google.golang.org/grpc"

	pb "formsink/proto"
)

// A command line utility to send test requests to a formsink server
func main() {
	// Parse command line args
	grpcHostArg := flag.String("grpchost", "localhost:37291", "formsink gRPC host to send the request to.")
	rawRequestFilenameArg := flag.String("rawrequest", "./myrequest.txt", "Path to file containing a full HTTP request whose body is a multipart form.")
	txidArg := flag.String("txid", "ingestclient", "Transaction ID to tag the request with.")
	flag.Parse()

	file, err := os.Open(*rawRequestFilenameArg)
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	defer file.Close()

	r := bufio.NewReader(file)
	req, err := http.ReadRequest(r)
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}

	var headers []*pb.HeaderPair
	for headername, values := range req.Header {
		for _, v := range values {
			headers = append(headers, &pb.HeaderPair{Key: headername, Value: v})
		}
	}

	// Read first body chunk
	var buf [61440]byte // 60 kibibytes
	var bodyChunk []byte
	moreBodyChunks := true
	bodyReader := req.Body
	n, err := bodyReader.Read(buf[:])
	if err != nil {
		if err == io.EOF {
			moreBodyChunks = false
		} else {
			fmt.Printf("%v\n", err)
			return
		}
	}
	bodyChunk = buf[:n]

	// Establish gRPC connection
	conn, err := grpc.Dial(*grpcHostArg, grpc.WithInsecure())
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	defer conn.Close()
	client := pb.NewUploadIngestionClient(conn)
	stream, err := client.IngestRequest(context.Background())
	if err != nil {
		log.Fatalf("%v.IngestRequest(_) = _, %v", client, err)
	}

	// Send first message
	log.Printf("sending headers and first chunk")
	first := &pb.UploadRequest{
		TransactionId:  *txidArg,
		Headers:        headers,
		BodyChunk:      bodyChunk,
		MoreBodyChunks: moreBodyChunks,
	}
	if err := stream.Send(first); err != nil {
		if err == io.EOF {
			log.Printf("got EOF from gRPC server")
		} else {
			log.Fatalf("%v.Send(_) = %v", stream, err)
		}
	}

	// Send more messages if larger request body
	for moreBodyChunks {
		n, err := bodyReader.Read(buf[:])
		if err != nil {
			if err == io.EOF {
				moreBodyChunks = false
			} else {
				log.Fatalf("%v", err)
			}
		}
		bodyChunk = buf[:n]

		log.Printf("sending next body chunk")
		next := &pb.UploadRequest{
			BodyChunk:      bodyChunk,
			MoreBodyChunks: moreBodyChunks,
		}
		if err := stream.Send(next); err != nil {
			if err == io.EOF {
				log.Printf("got EOF from gRPC server")
				moreBodyChunks = false
			} else {
				log.Fatalf("%v.Send(_) = %v", stream, err)
			}
		}
	}

	reply, err := stream.CloseAndRecv()
	if err != nil {
		log.Fatalf("%v.CloseAndRecv() got error %v", stream, err)
	}

	if reply == nil {
		log.Fatalf("reply was nil")
	}

	log.Printf("reply.Accepted: %v", reply.Accepted)
	if reply.Rejection != "" {
		log.Printf("reply.Rejection: %v", reply.Rejection)
	}
	for _, f := range reply.Fields {
		log.Printf("field %q = %q", f.Name, f.Value)
	}
	for _, f := range reply.Files {
		log.Printf("file %q: name=%q contentType=%q size=%v tempFilePath=%q inlineBytes=%v", f.FieldName, f.FileName, f.ContentType, f.Size, f.TempFilePath, len(f.Content))
	}
}
